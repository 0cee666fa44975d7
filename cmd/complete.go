package cmd

import (
	"flag"

	"github.com/etnz/stocktracker/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors for flags whose values are known in advance.
var predictors = map[string]complete.Predictor{
	"holdings-file": predict.Files("*.json"),
	"log-file":      predict.Files("*"),
	"source":        predict.Set{"yahoo", "eodhd", "tradegate", "auto"},
	"log-format":    predict.Set{"pretty", "json"},
}

// Completion describes the stk command line for shell completion, from the
// global flags in fs and the subcommand flags.
func Completion(fs *flag.FlagSet) *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(fs),
	}
	for _, cmd := range Commands {
		sub := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(sub)
		c.Sub[cmd.Name()] = &complete.Command{Flags: flagPredictors(sub)}
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		c.Sub["topic"].Args = predict.Set(topics)
	}
	return c
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := predictors[f.Name]; ok {
			m[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = predict.Nothing
			return
		}
		m[f.Name] = predict.Something
	})
	return m
}
