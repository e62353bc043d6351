package tilefield

import "context"

// Input is the signal a frame is advanced with: Pointer, Orientation or
// NoInput. Values are normalized to [-1,1] on both axes.
type Input interface {
	input()
}

// Pointer is the normalized mouse position on a desktop viewport.
type Pointer struct{ X, Y float64 }

// Orientation is the smoothed device tilt on a touch device.
type Orientation struct{ X, Y float64 }

// NoInput means no parallax signal is available.
type NoInput struct{}

func (Pointer) input()     {}
func (Orientation) input() {}
func (NoInput) input()     {}

// Device is the viewport classification that picks the input path.
type Device int

const (
	Desktop Device = iota
	Mobile
)

func (d Device) String() string {
	if d == Mobile {
		return "mobile"
	}
	return "desktop"
}

// Classify maps a viewport width to a device class.
func Classify(width, mobileWidth int) Device {
	if width > mobileWidth {
		return Desktop
	}
	return Mobile
}

// OrientationPermission asks the platform for access to orientation events.
type OrientationPermission interface {
	RequestOrientationPermission(ctx context.Context) (bool, error)
}

// Tracker keeps the latest pointer and orientation readings written by
// input callbacks. It is not safe for concurrent use; callbacks and frames
// run on the same loop.
type Tracker struct {
	cfg Config

	width, height int
	device        Device

	pointer Pointer

	permitted bool
	hasTilt   bool
	tiltX     float64
	tiltY     float64
}

// NewTracker returns a tracker for a viewport of the given size.
func NewTracker(cfg Config, width, height int) *Tracker {
	t := &Tracker{cfg: cfg}
	t.Resize(width, height)
	return t
}

// Resize records the viewport size and re-evaluates the device class.
func (t *Tracker) Resize(width, height int) {
	t.width, t.height = width, height
	t.device = Classify(width, t.cfg.MobileWidth)
}

func (t *Tracker) Device() Device { return t.device }

// RequestPermission is called once on mount. A nil requester means the
// platform grants orientation events without asking. Denial and errors
// leave orientation unavailable; the error is returned for logging only.
func (t *Tracker) RequestPermission(ctx context.Context, p OrientationPermission) error {
	if t.device != Mobile {
		return nil
	}
	if p == nil {
		t.permitted = true
		return nil
	}
	ok, err := p.RequestOrientationPermission(ctx)
	t.permitted = ok && err == nil
	return err
}

func (t *Tracker) OrientationAvailable() bool { return t.permitted }

// PointerMove records a pointer position in viewport pixels.
func (t *Tracker) PointerMove(clientX, clientY float64) {
	if t.device != Desktop || t.width <= 0 || t.height <= 0 {
		return
	}
	t.pointer = Pointer{
		X: clientX/float64(t.width)*2 - 1,
		Y: -(clientY/float64(t.height))*2 + 1,
	}
}

// DeviceOrientation records a gamma/beta reading in degrees. Readings are
// clamped, rescaled and low-pass filtered.
func (t *Tracker) DeviceOrientation(gamma, beta float64) {
	if t.device != Mobile || !t.permitted {
		return
	}
	rawX := clamp(gamma/t.cfg.TiltRange*t.cfg.TiltGain, -1, 1)
	rawY := clamp((beta-t.cfg.TiltRestBeta)/t.cfg.TiltRange*t.cfg.TiltGain, -1, 1)

	t.tiltX = lerp(t.tiltX, rawX, t.cfg.TiltSmoothing)
	t.tiltY = lerp(t.tiltY, rawY, t.cfg.TiltSmoothing)
	t.hasTilt = true
}

// Signal returns the input for the next frame.
func (t *Tracker) Signal() Input {
	if t.device == Desktop {
		return t.pointer
	}
	if t.permitted && t.hasTilt {
		return Orientation{X: t.tiltX, Y: t.tiltY}
	}
	return NoInput{}
}
