package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/builder"
)

func main() {
	ctx := context.Background()

	settings := builder.DefaultConfig()
	settings.Storage.Driver = "none"

	var seen int
	sensor := builder.NewSensor(
		builder.SensorWithOnStateChangeFunc(func(c builder.ComponentMetadata, from, to builder.SessionState) {
			fmt.Printf("%s: %s -> %s\n", c.Type, from, to)
		}),
		// Every 200th point is enough to watch the curve build.
		builder.SensorWithOnPointFunc(func(_ builder.ComponentMetadata, p builder.ProcessedPoint) {
			seen++
			if seen%200 == 0 {
				fmt.Printf("t=%.2fs strain=%.5f stress=%.1f MPa\n", p.Timestamp, p.Strain, p.StressMPa)
			}
		}),
		builder.SensorWithOnOverrunFunc(func(_ builder.ComponentMetadata, total uint64) {
			fmt.Printf("overrun: %d batches dropped so far\n", total)
		}),
		builder.SensorWithOnAnalyzedFunc(func(_ builder.ComponentMetadata, r builder.AnalysisResult) {
			for _, region := range builder.Regions {
				fmt.Printf("%-9s %s\n", region, r.Outcome(region))
			}
		}),
	)

	rig, err := builder.NewRig(ctx, settings, builder.RigWithSensor(sensor))
	if err != nil {
		panic(err)
	}
	defer rig.Close()

	if err := rig.Start(ctx, map[string]string{builder.MetaOperator: "example"}); err != nil {
		panic(err)
	}
	time.Sleep(3 * time.Second)
	if err := rig.Stop(); err != nil {
		panic(err)
	}
	if _, err := rig.Analyze(); err != nil {
		panic(err)
	}
	rig.Discard()
}
