package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/escrowswap/errors"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is an independent runnable that is taking input and
// output being stdin and stdout. Given args are the command line arguments,
// without the program name and the command name, that should be parsed
// using the flag package. Use os.Stderr to write error messages.
//
// Commands can be combined with a unix pipe. For example, an instruction
// payload can be created and inspected in one line:
//
//	$ escrowcli init-escrow -amount 10 | escrowcli view-instruction
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"derive":           cmdDerive,
	"exchange":         cmdExchange,
	"init-escrow":      cmdInitEscrow,
	"simulate":         cmdSimulate,
	"transfer":         cmdTransfer,
	"version":          cmdVersion,
	"view-instruction": cmdViewInstruction,
	"view-record":      cmdViewRecord,
}

var debugFl = flag.Bool("debug", false, "Print full error details, including stack traces.")

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	run, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip the command name that we just consumed.
	if err := run(os.Stdin, os.Stdout, args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err, *debugFl))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "%s is a command line client for the escrow program.\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [-debug] <command> [<flags>]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
	fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
}

// describeError returns the error as surfaced to the user. Unless in debug
// mode, details of errors that were not registered are hidden.
func describeError(err error, debug bool) string {
	code, log := errors.Info(errors.Redact(err, debug), debug)
	return fmt.Sprintf("error %d: %s", code, log)
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	fmt.Fprintln(out, gitHash)
	return nil
}

// gitHash is set during the compilation time.
var gitHash string = "dev"
