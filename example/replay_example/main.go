package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/builder"
)

const rampSamples = 2000

// rampSource replays a linear elastic ramp in place of the DAQ.
type rampSource struct {
	mu   sync.Mutex
	n    int
	rate float64
}

func (r *rampSource) Poll(ctx context.Context) ([]builder.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]builder.Sample, 0, 100)
	for i := 0; i < 100 && r.n < rampSamples; i++ {
		frac := float64(r.n) / rampSamples
		out = append(out, builder.Sample{
			Timestamp:  float64(r.n) / r.rate,
			Ch0Voltage: 4 * frac,
			Ch1Voltage: 0.5 * frac,
		})
		r.n++
	}
	return out, nil
}

// Reset rewinds the ramp; the rig calls it when a session starts.
func (r *rampSource) Reset() {
	r.mu.Lock()
	r.n = 0
	r.mu.Unlock()
}

func main() {
	ctx := context.Background()

	settings := builder.DefaultConfig()
	settings.Storage.Driver = "parquet"
	settings.Storage.Path = "replay-sessions"

	src := &rampSource{rate: settings.Acquisition.SampleRateHz}
	rig, err := builder.NewRig(ctx, settings, builder.RigWithSource(src))
	if err != nil {
		panic(err)
	}
	defer rig.Close()

	if err := rig.Start(ctx, map[string]string{builder.MetaSpecimenID: "ramp-1"}); err != nil {
		panic(err)
	}
	time.Sleep(time.Second)
	if err := rig.Stop(); err != nil {
		panic(err)
	}

	result, err := rig.Analyze()
	if err != nil {
		panic(err)
	}
	if e := result.Elastic; e != nil {
		fmt.Printf("modulus %.1f GPa (R2 %.4f)\n", e.ModulusGPa, e.RSquared)
	}

	id := rig.Session().ID
	if err := rig.Persist(ctx); err != nil {
		panic(err)
	}

	sessions, err := rig.Sessions(ctx)
	if err != nil {
		panic(err)
	}
	fmt.Printf("persisted %s, %d session(s) on disk\n", id, len(sessions))
	_ = builder.EncodeJSON(os.Stdout, sessions, true)
}
