package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	audio "github.com/gordonklaus/jacksine"
)

func TestRenderTone(t *testing.T) {
	for _, c := range []struct {
		rate      float64
		buffer    int
		driftFree bool
	}{
		{44100, 256, false},
		{48000, 128, false},
		{96000, 1000, true},
		{44100, 7, true},
	} {
		r, err := renderTone(context.Background(), c.rate, int(c.rate), c.buffer, c.driftFree)
		if err != nil {
			t.Fatal(err)
		}
		if r.Frames != int(c.rate) {
			t.Errorf("%+v: rendered %d frames", c, r.Frames)
		}
		if err := r.verify(); err != nil {
			t.Errorf("%+v: %v", c, err)
		}
	}
}

func TestRenderTone_empty(t *testing.T) {
	if _, err := renderTone(context.Background(), 44100, 0, 256, false); err == nil {
		t.Error("expected error for zero frames")
	}
	if _, err := renderTone(context.Background(), 0, 100, 256, false); !audio.IsOp(err, audio.OpConnect) {
		t.Errorf("zero rate: got %v, want connect error", err)
	}
}

func TestCheckResult_verify(t *testing.T) {
	good := checkResult{Frames: 44100, Peak: 0.2, Freq: 440.3, BinWidth: 1.3, ChannelsMatch: true}
	if err := good.verify(); err != nil {
		t.Errorf("good result: %v", err)
	}
	for name, r := range map[string]checkResult{
		"channels": {Peak: 0.2, Freq: 440, BinWidth: 1, ChannelsMatch: false},
		"peak":     {Peak: 0.25, Freq: 440, BinWidth: 1, ChannelsMatch: true},
		"pitch":    {Peak: 0.2, Freq: 445, BinWidth: 1, ChannelsMatch: true},
	} {
		if err := r.verify(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestPrintConnectHelp(t *testing.T) {
	var buf bytes.Buffer
	printConnectHelp(&buf, "jack")
	out := buf.String()
	for _, want := range []string{`"PortAudio:out_1" "system:playback_1"`, `"PortAudio:out_2" "system:playback_2"`, "Ctrl+C"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}

	buf.Reset()
	printConnectHelp(&buf, "alsa")
	if strings.Contains(buf.String(), "jack_connect") {
		t.Errorf("jack_connect hint for alsa:\n%s", buf.String())
	}
}

func TestPrintDevices(t *testing.T) {
	var buf bytes.Buffer
	printDevices(&buf, []audio.HostAPIInfo{
		{Name: "JACK Audio Connection Kit", Default: true, Outputs: []audio.OutputDevice{
			{Name: "system", Channels: 2, SampleRate: 48000, Default: true},
		}},
		{Name: "OSS"},
	})
	out := buf.String()
	for _, want := range []string{"JACK Audio Connection Kit (default)", "* system", "48000 Hz", "no output devices"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}

func TestSetupLogging(t *testing.T) {
	if err := setupLogging("debug"); err != nil {
		t.Error(err)
	}
	if err := setupLogging("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
	setupLogging("info")
}

func TestRootCmd_portNames(t *testing.T) {
	for _, want := range []string{"PortAudio:out_1", "PortAudio:out_2", "jack_lsp"} {
		if !strings.Contains(rootCmd.Long, want) {
			t.Errorf("help text missing %q:\n%s", want, rootCmd.Long)
		}
	}
}
