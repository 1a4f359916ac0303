package main

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	audio "github.com/gordonklaus/jacksine"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Render the tone offline and verify level, channels and pitch",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Float64("rate", 44100, "sample rate to render at")
	checkCmd.Flags().Float64("seconds", 1, "length to render")
	checkCmd.Flags().Int("buffer", 256, "frames per callback")
	checkCmd.Flags().Bool("drift-free", false, "check the counter-based oscillator")
}

type checkResult struct {
	Frames        int
	Peak, RMS     float64
	Freq          float64
	BinWidth      float64
	ChannelsMatch bool
}

func runCheck(cmd *cobra.Command, _ []string) error {
	rate, _ := cmd.Flags().GetFloat64("rate")
	seconds, _ := cmd.Flags().GetFloat64("seconds")
	buffer, _ := cmd.Flags().GetInt("buffer")
	driftFree, _ := cmd.Flags().GetBool("drift-free")

	r, err := renderTone(cmd.Context(), rate, int(rate*seconds), buffer, driftFree)
	if err != nil {
		return err
	}
	log.Info("Rendered",
		"frames", r.Frames,
		"peak", fmt.Sprintf("%.4f", r.Peak),
		"rms", fmt.Sprintf("%.4f", r.RMS),
		"freq", fmt.Sprintf("%.2f", r.Freq),
		"resolution", fmt.Sprintf("%.2f", r.BinWidth))
	if err := r.verify(); err != nil {
		return err
	}
	log.Info("Tone OK")
	return nil
}

// renderTone plays the tone through a free-running loopback device and
// measures the left channel.
func renderTone(ctx context.Context, rate float64, frames, buffer int, driftFree bool) (checkResult, error) {
	if frames <= 0 {
		return checkResult{}, errors.New("nothing to render")
	}
	dev := audio.NewLoopback(rate, buffer)
	dev.Frames = frames

	var (
		meter audio.Meter
		left  = make([]float64, 0, frames)
		match = true
	)
	dev.Sink = func(out [][]float32) {
		meter.Add(out[0])
		for i, x := range out[0] {
			left = append(left, float64(x))
			if x != out[1][i] {
				match = false
			}
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-dev.Done()
		cancel()
	}()
	if err := audio.Play(ctx, dev, audio.NewTone(driftFree), nil); err != nil {
		return checkResult{}, err
	}

	freq, err := audio.PeakFrequency(left, rate)
	if err != nil {
		return checkResult{}, fmt.Errorf("analysing %d frames: %w", len(left), err)
	}
	return checkResult{
		Frames:        len(left),
		Peak:          meter.Peak(),
		RMS:           meter.RMS(),
		Freq:          freq,
		BinWidth:      audio.BinWidth(len(left), rate),
		ChannelsMatch: match,
	}, nil
}

func (r checkResult) verify() error {
	var errs []error
	if !r.ChannelsMatch {
		errs = append(errs, errors.New("left and right channels differ"))
	}
	if limit := float64(float32(audio.Gain)); r.Peak > limit {
		errs = append(errs, fmt.Errorf("peak %.4f exceeds gain %.4f", r.Peak, limit))
	}
	if d := math.Abs(r.Freq - audio.Frequency); d > r.BinWidth {
		errs = append(errs, fmt.Errorf("tone at %.2f Hz, want %d Hz ± %.2f", r.Freq, audio.Frequency, r.BinWidth))
	}
	return errors.Join(errs...)
}
