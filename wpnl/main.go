package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/mani-coder/wealthica-pnl-addon/cmd"
)

// completion describes the command tree for shell completion. It must be
// invoked before flag.Parse.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"composition": {Flags: map[string]complete.Predictor{
			"g":        predict.Set{"currency", "type", "institution", "account"},
			"holdings": predict.Nothing,
		}},
		"holdings": {Flags: map[string]complete.Predictor{
			"g": predict.Set{"currency", "type", "institution", "account"},
			"s": predict.Something,
		}},
		"activity": {Flags: map[string]complete.Predictor{
			"from": predict.Something,
		}},
		"fetch": {Flags: map[string]complete.Predictor{
			"token": predict.Something,
			"from":  predict.Something,
		}},
		"topic":  {Args: predict.Set{"readme", "composition", "holdings", "activity", "*"}},
		"assist": {Flags: map[string]complete.Predictor{"model": predict.Something}},
		"help":   {},
		"flags":  {},
	},
	Flags: map[string]complete.Predictor{
		"snapshot-file":     predict.Files("*.json"),
		"transactions-file": predict.Files("*.jsonl"),
	},
}

func main() {
	completion.Complete("wpnl")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
