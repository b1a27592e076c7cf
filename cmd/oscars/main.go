package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/HerbHall/oscars/internal/version"
)

const usage = `usage: oscars <command> [flags]

commands:
  serve     run the HTTP query server (default)
  import    load a collection file into the SQLite store
  export    write a stored collection to a YAML file
  version   print version information
`

func main() {
	// A missing .env file is not an error; OSCARS_* may come from the environment.
	_ = godotenv.Load()

	args := os.Args[1:]
	cmd := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		runServe(args)
	case "import":
		runImport(args)
	case "export":
		runExport(args)
	case "version":
		fmt.Println(version.Info())
	case "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
}
