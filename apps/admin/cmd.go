package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/klasbord/klasbord/core/competency"
	"github.com/klasbord/klasbord/core/mailtmpl"
	"github.com/klasbord/klasbord/core/objective"
	"github.com/klasbord/klasbord/core/remark"
	"github.com/klasbord/klasbord/core/rubric"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db *sql.DB

	objectiveRepo objective.Repository
	rubricRepo    rubric.Repository
	compRepo      competency.Repository
	remarkRepo    remark.Repository
	mailRepo      mailtmpl.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run DB migrations (goose commands: up, down, status, ...)")
	fmt.Println("  seed [-subject SUBJECT_ID] - load the template fixtures into the given subject")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedSubject := seedCmd.String("subject", "template", "The subject to attach the seeded template records to.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *seedSubject == "" {
			seedCmd.Usage()
			return errHelp
		}
		return cli.seed(*seedSubject)
	default:
		cli.printUsage()
		return errHelp
	}
}
