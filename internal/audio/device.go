package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alkime/doba/pkg/channels"
	"github.com/alkime/doba/pkg/collections"
	"github.com/gen2brain/malgo"
)

// ErrNotAllocated is returned when Start is called before CaptureInto or PlaybackFrom.
var ErrNotAllocated = errors.New("device not allocated")

// Source fills a playback buffer with S16LE samples.
// It is called from the audio thread and must not block.
type Source interface {
	Fill(out []byte)
}

type Device interface {
	// EnumerateDevices lists available capture devices.
	// It ignores any device configuration passed in.
	EnumerateDevices(ctx context.Context) ([]Info, error)

	// CaptureInto initializes the underlying device for capture. Once started,
	// copies of the sampled packets are sent to dataC; packets are dropped
	// rather than blocking the audio thread when dataC is full.
	CaptureInto(ctx context.Context, dataC chan<- DataPacket) error

	// PlaybackFrom initializes the underlying device for playback, pulling
	// samples from src once started.
	PlaybackFrom(ctx context.Context, src Source) error

	// Start starts the audio device.
	Start(ctx context.Context) error
	// Stop stops the audio device.
	// if the underlying device has already been deallocated this is a no-op.
	Stop(ctx context.Context) error

	// IsStarted returns whether the audio device is currently started.
	IsStarted() bool

	// Dealloc deallocates the underlying audio device and frees resources.
	Dealloc(ctx context.Context)
}

type device struct {
	conf *DeviceConfig

	mgCtx    *malgo.AllocatedContext
	mgDevice *malgo.Device
	sender   *channels.DropCounter[DataPacket]
}

// NewDevice returns a malgo backed Device. A nil conf uses DefaultDeviceConfig.
func NewDevice(conf *DeviceConfig) Device {
	if conf == nil {
		conf = DefaultDeviceConfig(DefaultSampleRate)
	}

	return &device{conf: conf}
}

func (d *device) EnumerateDevices(_ context.Context) ([]Info, error) {
	// An empty context is fine for just enumerating the available devices.
	devCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	defer uninitializeContext(devCtx)

	captureDevices, err := devCtx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("failed to get capture devices: %w", err)
	}

	return collections.Apply(captureDevices, malgoDeviceInfoToDeviceInfo), nil
}

func (d *device) CaptureInto(_ context.Context, dataC chan<- DataPacket) error {
	if dataC == nil {
		return errors.New("data channel is nil. unable to allocate device")
	}

	d.sender = channels.NewDropCounter(dataC)

	devCnf := malgo.DefaultDeviceConfig(malgo.Capture)
	devCnf.Capture.Format = d.conf.Format
	devCnf.Capture.Channels = uint32(d.conf.CaptureChannels) //nolint:gosec // small positive config value
	devCnf.SampleRate = uint32(d.conf.SampleRate)            //nolint:gosec // small positive config value

	sender := d.sender
	callbacks := malgo.DeviceCallbacks{
		Data: func(_, samples []byte, _ uint32) {
			// malgo reuses the buffer after the callback returns
			packet := make(DataPacket, len(samples))
			copy(packet, samples)
			sender.Send(packet)
		},
	}

	if err := d.alloc(devCnf, callbacks); err != nil {
		return fmt.Errorf("failed to create malgo capture device: %w", err)
	}

	return nil
}

func (d *device) PlaybackFrom(_ context.Context, src Source) error {
	if src == nil {
		return errors.New("playback source is nil. unable to allocate device")
	}

	devCnf := malgo.DefaultDeviceConfig(malgo.Playback)
	devCnf.Playback.Format = d.conf.Format
	devCnf.Playback.Channels = uint32(d.conf.PlaybackChannels) //nolint:gosec // small positive config value
	devCnf.SampleRate = uint32(d.conf.SampleRate)              //nolint:gosec // small positive config value

	callbacks := malgo.DeviceCallbacks{
		Data: func(out, _ []byte, _ uint32) {
			src.Fill(out)
		},
	}

	if err := d.alloc(devCnf, callbacks); err != nil {
		return fmt.Errorf("failed to create malgo playback device: %w", err)
	}

	return nil
}

func (d *device) Start(_ context.Context) error {
	if d.mgDevice == nil {
		return ErrNotAllocated
	}

	if d.mgDevice.IsStarted() {
		// noop
		return nil
	}

	if err := d.mgDevice.Start(); err != nil {
		return fmt.Errorf("failed to start malgo device: %w", err)
	}

	return nil
}

func (d *device) Stop(_ context.Context) error {
	if d.mgDevice == nil {
		// noop
		return nil
	}

	if err := d.mgDevice.Stop(); err != nil {
		return fmt.Errorf("failed to stop malgo device: %w", err)
	}

	return nil
}

func (d *device) Dealloc(_ context.Context) {
	if d.mgDevice == nil {
		return
	}

	if d.sender != nil && d.sender.Dropped() > 0 {
		slog.Warn("audio packets dropped during capture", "dropped", d.sender.Dropped())
	}

	d.mgDevice.Uninit()
	uninitializeContext(d.mgCtx)
	d.mgDevice = nil
	d.mgCtx = nil
}

func (d *device) IsStarted() bool {
	if d.mgDevice == nil {
		return false
	}

	return d.mgDevice.IsStarted()
}

func (d *device) alloc(devCnf malgo.DeviceConfig, callbacks malgo.DeviceCallbacks) error {
	if d.mgDevice != nil {
		return errors.New("device already allocated")
	}

	mgCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		slog.Debug("malgo audio device log", "msg", msg)
	})
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	mgDevice, err := malgo.InitDevice(mgCtx.Context, devCnf, callbacks)
	if err != nil {
		uninitializeContext(mgCtx)
		return fmt.Errorf("failed to initialize malgo device: %w", err)
	}

	d.mgCtx = mgCtx
	d.mgDevice = mgDevice

	return nil
}

type Info struct {
	Name        string
	IsDefault   bool
	FormatCount int
	Formats     []string
}

func malgoDeviceInfoToDeviceInfo(mdi malgo.DeviceInfo) Info {
	formats := make([]string, len(mdi.Formats))
	for i, mf := range mdi.Formats {
		formats[i] = fmt.Sprintf("(SampleSizeBytes: %d, Channels: %d, SampleRate: %d)",
			malgo.SampleSizeInBytes(mf.Format),
			mf.Channels, mf.SampleRate)
	}
	return Info{
		Name:        mdi.Name(),
		IsDefault:   mdi.IsDefault != 0,
		FormatCount: int(mdi.FormatCount),
		Formats:     formats,
	}
}

type DataPacket = []byte

func uninitializeContext(deviceCtx *malgo.AllocatedContext) {
	if deviceCtx == nil {
		return
	}

	if err := deviceCtx.Uninit(); err != nil {
		slog.Error("failed to uninitialize malgo context", "error", err)
	}
	deviceCtx.Free()
}
