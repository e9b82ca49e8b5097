package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/builder"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settings := builder.DefaultConfig()
	settings.Storage.Driver = "none"

	rig, err := builder.NewRig(ctx, settings)
	if err != nil {
		panic(err)
	}
	defer rig.Close()

	go rig.Meter.Monitor(ctx, 500*time.Millisecond)

	if err := rig.Start(ctx, nil); err != nil {
		panic(err)
	}
	for i := 0; i < 4; i++ {
		time.Sleep(500 * time.Millisecond)
		fmt.Printf("samples=%d points=%d dropped=%d cpu=%.1f%% ram=%.1f%%\n",
			rig.Meter.GetMetricCount(builder.MetricSamplesAcquiredCount),
			rig.Meter.GetMetricCount(builder.MetricPointsProcessedCount),
			rig.Meter.GetMetricCount(builder.MetricBatchesDroppedCount),
			rig.Meter.GetMetricPercentage(builder.MetricCurrentCpuPercentage),
			rig.Meter.GetMetricPercentage(builder.MetricCurrentRamPercentage),
		)
	}
	if err := rig.Stop(); err != nil {
		panic(err)
	}
	rig.Discard()

	for name, count := range rig.Meter.Snapshot().Counts {
		if count > 0 {
			fmt.Printf("%-28s %d\n", name, count)
		}
	}
}
