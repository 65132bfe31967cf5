// fpctl is the command line tool for enrolling and verifying fingerprints
// against an optical sensor attached over a serial port. Templates never
// stay on the sensor: enroll pulls them into a local SQLite database and
// verify pushes them back for the comparison.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/banshee-data/fingermark/internal/version"
)

var log = logrus.New()

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "info":
		handleInfo(args)
	case "enroll":
		handleEnroll(args)
	case "verify":
		handleVerify(args)
	case "hash":
		handleHash(args)
	case "list":
		handleList(args)
	case "delete":
		handleDelete(args)
	case "version":
		fmt.Printf("fpctl version %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`fpctl - fingerprint sensor tool

Usage: fpctl <command> [options]

Commands:
  info      Probe the sensor and print its system parameters
  enroll    Enroll a finger and store its template under a label
  verify    Verify a live finger against a stored template
  hash      Capture a finger and print its template digest
  list      List stored templates
  delete    Delete a stored template
  version   Print the fpctl version
  help      Show this help

Common options (accepted by sensor commands):
  -port     Serial port path (default /dev/ttyUSB0)
  -baud     Baud rate (default 57600)
  -db       Template database path (default fingermark.db)
  -config   JSON configuration file
  -verbose  Enable debug logging

Run 'fpctl <command> -h' for command-specific options.`)
}
