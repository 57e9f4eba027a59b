// Command skill-bus-dispatch is the one-shot dispatcher invoked by the
// host once per skill lifecycle event. It always exits 0; failures
// surface only through the emitted systemMessage.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/joeymnguyen/skill-bus/dispatch"
)

type options struct {
	timing string
	cwd    string
	source string
}

func (o *options) Validate() error {
	switch o.timing {
	case "pre", "post", "complete":
	default:
		return fmt.Errorf("--timing must be one of pre|post|complete, got %q", o.timing)
	}
	switch o.source {
	case "tool", "prompt":
	default:
		return fmt.Errorf("--source must be one of tool|prompt, got %q", o.source)
	}
	return nil
}

func gatherOptions(fs *flag.FlagSet, args ...string) options {
	var o options
	cwd, _ := os.Getwd()

	fs.StringVar(&o.timing, "timing", "", "Lifecycle point: pre, post, or complete.")
	fs.StringVar(&o.cwd, "cwd", cwd, "Working directory to resolve project config and conditions against.")
	fs.StringVar(&o.source, "source", "tool", "Invocation source: tool or prompt.")
	fs.Parse(args)
	return o
}

func main() {
	if os.Getenv("SKILL_BUS_DEBUG") == "1" {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	o := gatherOptions(flag.NewFlagSet(os.Args[0], flag.ContinueOnError), os.Args[1:]...)
	if err := o.Validate(); err != nil {
		emit(&errorOutput{SystemMessage: fmt.Sprintf("[skill-bus] ERROR - %v", err)})
		os.Exit(0)
	}

	skillName := os.Getenv("SKILL_BUS_SKILL")
	logrus.WithFields(logrus.Fields{
		"skill":  skillName,
		"timing": o.timing,
		"source": o.source,
		"cwd":    o.cwd,
	}).Debug("dispatching skill event")

	out := dispatch.Run(dispatch.Options{
		SkillName: skillName,
		Timing:    o.timing,
		Source:    o.source,
		Cwd:       o.cwd,
	})

	if !out.Empty() {
		emit(out)
	}
	os.Exit(0)
}

// errorOutput mirrors assemble.Output's shape for the narrow pre-dispatch
// validation-failure path, where dispatch.Run never gets a chance to run.
type errorOutput struct {
	SystemMessage string `json:"systemMessage"`
}

func emit(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		fmt.Printf(`{"systemMessage":"[skill-bus] ERROR - failed to serialize output"}`)
		fmt.Println()
		return
	}
	fmt.Println(string(data))
}
