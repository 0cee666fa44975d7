package cmd

import (
	"flag"
	"testing"

	"github.com/posener/complete/v2/predict"
)

func TestCompletion(t *testing.T) {
	fs := flag.NewFlagSet("stk", flag.ContinueOnError)
	fs.String("holdings-file", "", "")
	fs.Bool("v", false, "")

	c := Completion(fs)

	if _, ok := c.Flags["holdings-file"]; !ok {
		t.Errorf("Completion() has no predictor for -holdings-file")
	}
	if _, ok := c.Flags["v"]; !ok {
		t.Errorf("Completion() has no predictor for -v")
	}

	for _, cmd := range Commands {
		if _, ok := c.Sub[cmd.Name()]; !ok {
			t.Errorf("Completion() has no subcommand %q", cmd.Name())
		}
	}
	for _, f := range []string{"s", "q", "p"} {
		if _, ok := c.Sub["add"].Flags[f]; !ok {
			t.Errorf("Completion() has no predictor for add -%s", f)
		}
	}
	if _, ok := c.Sub["view"].Flags["price"]; !ok {
		t.Errorf("Completion() has no predictor for view -price")
	}
	if _, ok := c.Sub["topic"].Args.(predict.Set); !ok {
		t.Errorf("Completion() has no topic predictor")
	}
}
