package audio

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gordonklaus/portaudio"
)

var hostAPITypes = map[string]portaudio.HostApiType{
	"jack":      portaudio.JACK,
	"alsa":      portaudio.ALSA,
	"oss":       portaudio.OSS,
	"coreaudio": portaudio.CoreAudio,
	"wasapi":    portaudio.WASAPI,
	"asio":      portaudio.ASIO,
	"mme":       portaudio.MME,
}

// HostAPINames lists the values accepted by PortAudio.HostAPI besides "default".
func HostAPINames() []string {
	names := make([]string, 0, len(hostAPITypes))
	for n := range hostAPITypes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PortAudio streams to the default output device of a PortAudio host API.
// With HostAPI "jack" the stream is a JACK client whose two output ports
// carry the left and right channels.
type PortAudio struct {
	HostAPI         string // "jack" if empty; "default" for the system default
	FramesPerBuffer int    // 0 lets the backend choose
	LowLatency      bool

	initialized bool
	started     bool
	stream      *portaudio.Stream
	hostName    string
	deviceName  string
}

func (d *PortAudio) hostAPIName() string {
	if d.HostAPI == "" {
		return "jack"
	}
	return strings.ToLower(d.HostAPI)
}

// HostName is the host API's own name once Open succeeded.
func (d *PortAudio) HostName() string { return d.hostName }

// DeviceName is the output device's name once Open succeeded.
func (d *PortAudio) DeviceName() string { return d.deviceName }

func (d *PortAudio) fail(op Op, err error) error {
	return &BackendError{Op: op, Backend: "portaudio/" + d.hostAPIName(), Err: err}
}

func (d *PortAudio) hostAPI() (*portaudio.HostApiInfo, error) {
	name := d.hostAPIName()
	if name == "default" {
		return portaudio.DefaultHostApi()
	}
	t, ok := hostAPITypes[name]
	if !ok {
		return nil, fmt.Errorf("unknown host API %q", d.HostAPI)
	}
	return portaudio.HostApi(t)
}

func (d *PortAudio) Open(cb Callback) (Params, error) {
	if d.stream != nil {
		return Params{}, errors.New("portaudio: device already open")
	}
	if err := portaudio.Initialize(); err != nil {
		return Params{}, d.fail(OpConnect, err)
	}
	d.initialized = true

	h, err := d.hostAPI()
	if err != nil {
		return Params{}, d.fail(OpConnect, err)
	}
	dev := h.DefaultOutputDevice
	if dev == nil {
		return Params{}, d.fail(OpConnect, fmt.Errorf("host API %s has no output device", h.Name))
	}
	if dev.MaxOutputChannels < ChannelCount {
		return Params{}, d.fail(OpRegister, fmt.Errorf("%s has %d output channels, need %d", dev.Name, dev.MaxOutputChannels, ChannelCount))
	}

	var p portaudio.StreamParameters
	if d.LowLatency {
		p = portaudio.LowLatencyParameters(nil, dev)
	} else {
		p = portaudio.HighLatencyParameters(nil, dev)
	}
	p.Output.Channels = ChannelCount
	p.FramesPerBuffer = portaudio.FramesPerBufferUnspecified
	if d.FramesPerBuffer > 0 {
		p.FramesPerBuffer = d.FramesPerBuffer
	}

	// Non-interleaved: one []float32 per channel.
	s, err := portaudio.OpenStream(p, func(out [][]float32) { cb(out) })
	if err != nil {
		return Params{}, d.fail(OpRegister, err)
	}
	d.stream = s
	d.hostName = h.Name
	d.deviceName = dev.Name

	params := Params{SampleRate: p.SampleRate, BufferSize: d.FramesPerBuffer}
	if info := s.Info(); info != nil && info.SampleRate > 0 {
		params.SampleRate = info.SampleRate
	}
	return params, nil
}

func (d *PortAudio) Start() error {
	if d.stream == nil {
		return d.fail(OpActivate, errors.New("device not open"))
	}
	if err := d.stream.Start(); err != nil {
		return d.fail(OpActivate, err)
	}
	d.started = true
	return nil
}

func (d *PortAudio) Close() error {
	var errs []error
	if d.stream != nil {
		if d.started {
			errs = append(errs, d.stream.Stop())
			d.started = false
		}
		errs = append(errs, d.stream.Close())
		d.stream = nil
	}
	if d.initialized {
		errs = append(errs, portaudio.Terminate())
		d.initialized = false
	}
	return errors.Join(errs...)
}

// OutputDevice describes a device able to play at least one channel.
type OutputDevice struct {
	Name       string
	Channels   int
	SampleRate float64
	Default    bool
}

// HostAPIInfo describes a PortAudio host API and its output devices.
type HostAPIInfo struct {
	Name    string
	Default bool
	Outputs []OutputDevice
}

// ListOutputs enumerates the host APIs PortAudio can reach and their output
// devices.
func ListOutputs() ([]HostAPIInfo, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, &BackendError{Op: OpConnect, Backend: "portaudio", Err: err}
	}
	defer portaudio.Terminate()

	apis, err := portaudio.HostApis()
	if err != nil {
		return nil, &BackendError{Op: OpConnect, Backend: "portaudio", Err: err}
	}
	def, _ := portaudio.DefaultHostApi()

	var infos []HostAPIInfo
	for _, h := range apis {
		info := HostAPIInfo{Name: h.Name, Default: def != nil && def.Name == h.Name}
		for _, dev := range h.Devices {
			if dev.MaxOutputChannels == 0 {
				continue
			}
			info.Outputs = append(info.Outputs, OutputDevice{
				Name:       dev.Name,
				Channels:   dev.MaxOutputChannels,
				SampleRate: dev.DefaultSampleRate,
				Default:    h.DefaultOutputDevice != nil && dev.Name == h.DefaultOutputDevice.Name,
			})
		}
		infos = append(infos, info)
	}
	return infos, nil
}
