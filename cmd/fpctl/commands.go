package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/banshee-data/fingermark/internal/fingerprint"
	"github.com/banshee-data/fingermark/internal/store"
)

// handleInfo probes the sensor and prints its system parameter block.
func handleInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	sf := registerSessionFlags(fs)
	fs.Parse(args)

	cfg, err := sf.resolve()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	sess, err := openSession(cfg)
	if err != nil {
		log.Fatalf("Failed to open sensor: %v", err)
	}
	defer sess.close()

	params, err := sess.sensor.ReadParameters()
	if err != nil {
		log.Fatalf("Failed to read parameters: %v", err)
	}
	count, err := sess.sensor.TemplateCount()
	if err != nil {
		log.Fatalf("Failed to read template count: %v", err)
	}

	fmt.Printf("System ID:        0x%04X\n", params.SystemID)
	fmt.Printf("Status register:  0x%04X\n", params.StatusRegister)
	fmt.Printf("Module address:   0x%08X\n", params.Address)
	fmt.Printf("Capacity:         %d slots (%d used)\n", params.Capacity, count)
	fmt.Printf("Security level:   %d\n", params.SecurityLevel)
	fmt.Printf("Packet size:      %d bytes\n", params.PacketSize())
	fmt.Printf("Baud rate:        %d\n", params.BaudRate())
}

// handleEnroll enrolls a finger and stores its template under a label.
func handleEnroll(args []string) {
	fs := flag.NewFlagSet("enroll", flag.ExitOnError)
	sf := registerSessionFlags(fs)
	label := fs.String("label", "", "label to store the template under (required)")
	fs.Parse(args)

	if *label == "" {
		fmt.Fprintln(os.Stderr, "enroll: -label is required")
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := sf.resolve()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	sess, err := openSession(cfg)
	if err != nil {
		log.Fatalf("Failed to open sensor: %v", err)
	}
	defer sess.close()

	transfer, err := sess.fp.Enroll()
	if err != nil {
		if errors.Is(err, fingerprint.ErrEnrollMismatch) {
			log.Fatal("The two scans do not belong to the same finger; try again")
		}
		log.Fatalf("Enrollment failed: %v", err)
	}
	if transfer.Truncated {
		log.WithField("received", transfer.Received).
			Warn("sensor delivered a partial template; stored zero-filled")
	}

	id, err := db.Insert(*label, transfer.Template, transfer.Truncated)
	if err != nil {
		log.Fatalf("Failed to store template: %v", err)
	}

	digest := fingerprint.Hash(transfer.Template)
	fmt.Printf("Enrolled %q\n", *label)
	fmt.Printf("  id:     %s\n", id)
	fmt.Printf("  digest: %s\n", digest)
}

// handleVerify compares a live finger against a stored template.
func handleVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	sf := registerSessionFlags(fs)
	label := fs.String("label", "", "label of the stored template (required)")
	fs.Parse(args)

	if *label == "" {
		fmt.Fprintln(os.Stderr, "verify: -label is required")
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := sf.resolve()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	rec, err := db.GetByLabel(*label)
	if err != nil {
		log.Fatalf("Failed to load template %q: %v", *label, err)
	}

	sess, err := openSession(cfg)
	if err != nil {
		log.Fatalf("Failed to open sensor: %v", err)
	}
	defer sess.close()

	result, err := sess.fp.Verify(rec.Template)
	if err != nil {
		if errors.Is(err, fingerprint.ErrNoMatch) {
			fmt.Printf("No match for %q\n", *label)
			os.Exit(1)
		}
		log.Fatalf("Verification failed: %v", err)
	}

	fmt.Printf("Match for %q (score %d)\n", *label, result.Score)
	if result.Retried {
		log.Debug("match succeeded on the automatic retry")
	}
}

// handleHash captures a finger and prints its template digest without
// storing anything.
func handleHash(args []string) {
	fs := flag.NewFlagSet("hash", flag.ExitOnError)
	sf := registerSessionFlags(fs)
	fs.Parse(args)

	cfg, err := sf.resolve()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	sess, err := openSession(cfg)
	if err != nil {
		log.Fatalf("Failed to open sensor: %v", err)
	}
	defer sess.close()

	digest, transfer, err := sess.fp.CaptureDigest()
	if err != nil {
		log.Fatalf("Capture failed: %v", err)
	}
	if transfer.Truncated {
		log.WithField("received", transfer.Received).
			Warn("sensor delivered a partial template; digest covers the zero-filled remainder")
	}

	fmt.Println(digest)
}

// handleList prints the stored templates.
func handleList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	sf := registerSessionFlags(fs)
	fs.Parse(args)

	cfg, err := sf.resolve()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	records, err := db.List()
	if err != nil {
		log.Fatalf("Failed to list templates: %v", err)
	}
	if len(records) == 0 {
		fmt.Println("No templates stored")
		return
	}

	for _, rec := range records {
		marker := ""
		if rec.Truncated {
			marker = " (truncated)"
		}
		fmt.Printf("%-20s %s  %s%s\n",
			rec.Label, rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Digest, marker)
	}
}

// handleDelete removes a stored template.
func handleDelete(args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	sf := registerSessionFlags(fs)
	label := fs.String("label", "", "label of the template to delete (required)")
	fs.Parse(args)

	if *label == "" {
		fmt.Fprintln(os.Stderr, "delete: -label is required")
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := sf.resolve()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	if err := db.Delete(*label); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Fatalf("No template stored under %q", *label)
		}
		log.Fatalf("Failed to delete template: %v", err)
	}
	fmt.Printf("Deleted %q\n", *label)
}
