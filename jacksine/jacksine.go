// Command jacksine streams a 440 Hz sine tone to the JACK audio graph until
// it is interrupted.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	audio "github.com/gordonklaus/jacksine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "jacksine",
	Short: "Stream a 440 Hz test tone to JACK",
	Long: "Stream a 440 Hz sine tone at -14 dB on two output ports of the JACK graph\n" +
		"(through PortAudio's JACK host API) until interrupted.\n\n" +
		"PortAudio names the JACK client " + jackClient + " and its ports out_1 (left)\n" +
		"and out_2 (right), so jack_lsp lists them as " + jackClient + ":out_1 and " + jackClient + ":out_2.",
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return setupLogging(viper.GetString("log-level"))
	},
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().String("host-api", "jack", fmt.Sprintf("PortAudio host API (%s or default)", strings.Join(audio.HostAPINames(), ", ")))
	rootCmd.Flags().Int("frames", 0, "frames per buffer (0 lets the server decide)")
	rootCmd.Flags().Bool("low-latency", false, "ask for the device's low latency instead of its high latency")
	rootCmd.Flags().Bool("drift-free", false, "derive the phase from a sample counter instead of accumulating it")

	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("host-api", rootCmd.Flags().Lookup("host-api"))
	_ = viper.BindPFlag("frames", rootCmd.Flags().Lookup("frames"))
	_ = viper.BindPFlag("low-latency", rootCmd.Flags().Lookup("low-latency"))
	_ = viper.BindPFlag("drift-free", rootCmd.Flags().Lookup("drift-free"))

	viper.SetEnvPrefix("jacksine")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(devicesCmd, checkCmd)
}

func setupLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	return nil
}

func run(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dev := &audio.PortAudio{
		HostAPI:         viper.GetString("host-api"),
		FramesPerBuffer: viper.GetInt("frames"),
		LowLatency:      viper.GetBool("low-latency"),
	}
	tone := audio.NewTone(viper.GetBool("drift-free"))

	log.Debug("Connecting", "host_api", dev.HostAPI, "frames", dev.FramesPerBuffer)
	err := audio.Play(ctx, dev, tone, func(p audio.Params) {
		log.Info("Streaming",
			"host", dev.HostName(),
			"device", dev.DeviceName(),
			"sample_rate", p.SampleRate,
			"frequency", audio.Frequency)
		printConnectHelp(cmd.ErrOrStderr(), dev.HostAPI)
	})
	if err != nil {
		return err
	}
	log.Info("Stopped")
	return nil
}

// PortAudio's JACK host registers its ports as out_1, out_2, ... on a client
// named PortAudio.
const jackClient = "PortAudio"

func printConnectHelp(w io.Writer, hostAPI string) {
	if hostAPI != "" && strings.ToLower(hostAPI) != "jack" {
		fmt.Fprintln(w, "Running. Ctrl+C to quit.")
		return
	}
	fmt.Fprintln(w, "Running. Connect to playback with qpwgraph or:")
	for i := 1; i <= audio.ChannelCount; i++ {
		fmt.Fprintf(w, "  jack_connect \"%s:out_%d\" \"system:playback_%d\"\n", jackClient, i, i)
	}
	fmt.Fprintln(w, "Ctrl+C to quit.")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var be *audio.BackendError
		if errors.As(err, &be) {
			log.Fatal("Audio backend failed", "backend", be.Backend, "op", be.Op, "err", be.Err)
		}
		log.Fatal("jacksine failed", "err", err)
	}
}
