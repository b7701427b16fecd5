//go:build linux

package evdevinput

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	evdev "github.com/holoplot/go-evdev"
	"go.uber.org/zap"

	"github.com/dshills/clickfx/internal/click"
)

// PositionFunc reports the current pointer position in screen
// coordinates. It may be nil if no position source is available.
type PositionFunc func() (x, y int, err error)

// Source reads button events from evdev pointer devices. It implements
// click.Source for a single subscriber at a time.
type Source struct {
	mu sync.Mutex

	devices  []*evdev.InputDevice
	position PositionFunc
	logger   *zap.Logger

	handler func(click.Event)
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewSource opens pointer devices for reading. If devicePath is empty,
// every readable non-virtual pointer device is used.
func NewSource(devicePath string, position PositionFunc, logger *zap.Logger) (*Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	devices, err := openPointerDevices(devicePath)
	if err != nil {
		return nil, err
	}
	return &Source{
		devices:  devices,
		position: position,
		logger:   logger,
	}, nil
}

// Subscribe starts the per-device read loops delivering press events to
// handler. Only one subscriber is supported; subscribing again replaces
// the previous handler after its loops have stopped.
func (s *Source) Subscribe(handler func(click.Event)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handler != nil {
		return nil, errors.New("source already has a subscriber")
	}
	s.handler = handler
	s.stopCh = make(chan struct{})

	for _, dev := range s.devices {
		s.wg.Add(1)
		go s.readLoop(dev, s.stopCh)
	}

	stop := s.stopCh
	return func() {
		s.mu.Lock()
		if s.stopCh != stop {
			s.mu.Unlock()
			return
		}
		close(s.stopCh)
		s.stopCh = nil
		s.handler = nil
		s.mu.Unlock()
		s.wg.Wait()
	}, nil
}

// Close releases the underlying devices. Any active subscription stops
// delivering events.
func (s *Source) Close() {
	s.mu.Lock()
	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
		s.handler = nil
	}
	devices := s.devices
	s.devices = nil
	s.mu.Unlock()

	for _, dev := range devices {
		_ = dev.Close()
	}
	s.wg.Wait()
}

func (s *Source) readLoop(dev *evdev.InputDevice, stopCh <-chan struct{}) {
	defer s.wg.Done()

	path := dev.Path()
	for {
		select {
		case <-stopCh:
			return
		default:
		}

		event, err := dev.ReadOne()
		if err != nil {
			if isDeviceClosedError(err) {
				return
			}
			if isWouldBlockError(err) {
				if !sleepWithStop(stopCh, 10*time.Millisecond) {
					return
				}
				continue
			}
			s.logger.Warn("device read failed", zap.String("path", path), zap.Error(err))
			if !sleepWithStop(stopCh, 100*time.Millisecond) {
				return
			}
			continue
		}
		if event == nil || uint16(event.Type) != evKey || event.Value != 1 {
			continue
		}

		button := buttonForCode(uint16(event.Code))
		if button == click.ButtonNone {
			continue
		}

		ev := click.Event{Button: button, Time: time.Now()}
		if s.position != nil {
			if x, y, posErr := s.position(); posErr == nil {
				ev.X, ev.Y = x, y
			}
		}

		s.mu.Lock()
		handler := s.handler
		s.mu.Unlock()
		if handler != nil {
			handler(ev)
		}
	}
}

func sleepWithStop(stopCh <-chan struct{}, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-stopCh:
		return false
	case <-timer.C:
		return true
	}
}

// DeviceInfo describes one input device for --list-devices output.
type DeviceInfo struct {
	Path      string
	Name      string
	IsPointer bool
	IsVirtual bool
}

// ListDevices enumerates the available input devices.
func ListDevices() ([]DeviceInfo, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}
	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Path < paths[j].Path
	})

	devices := make([]DeviceInfo, 0, len(paths))
	for _, path := range paths {
		dev, err := openDevice(path.Path)
		if err != nil {
			continue
		}

		name := path.Name
		if actualName, nameErr := dev.Name(); nameErr == nil && actualName != "" {
			name = actualName
		}
		devices = append(devices, DeviceInfo{
			Path:      path.Path,
			Name:      name,
			IsPointer: deviceIsPointer(dev),
			IsVirtual: deviceIsVirtual(dev, name),
		})
		_ = dev.Close()
	}
	return devices, nil
}

func openPointerDevices(devicePath string) ([]*evdev.InputDevice, error) {
	if devicePath != "" {
		dev, err := openDevice(devicePath)
		if err != nil {
			return nil, err
		}
		if !deviceHasButton(dev, btnLeft) {
			_ = dev.Close()
			return nil, fmt.Errorf("%s does not expose mouse buttons", devicePath)
		}
		if err := dev.NonBlock(); err != nil {
			_ = dev.Close()
			return nil, fmt.Errorf("set nonblocking mode for %s: %w", devicePath, err)
		}
		return []*evdev.InputDevice{dev}, nil
	}

	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}
	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Path < paths[j].Path
	})

	devices := make([]*evdev.InputDevice, 0, len(paths))
	for _, path := range paths {
		dev, err := openDevice(path.Path)
		if err != nil {
			continue
		}

		name := path.Name
		if actualName, nameErr := dev.Name(); nameErr == nil && actualName != "" {
			name = actualName
		}
		if deviceIsVirtual(dev, name) || !deviceIsPointer(dev) || !deviceHasButton(dev, btnLeft) {
			_ = dev.Close()
			continue
		}
		if err := dev.NonBlock(); err != nil {
			_ = dev.Close()
			continue
		}
		devices = append(devices, dev)
	}

	if len(devices) == 0 {
		return nil, errors.New("no readable pointer devices found; pass --device or check permissions")
	}
	return devices, nil
}

func openDevice(path string) (*evdev.InputDevice, error) {
	return evdev.OpenWithFlags(path, os.O_RDONLY)
}

func deviceHasButton(dev *evdev.InputDevice, code uint16) bool {
	needle := evdev.EvCode(code)
	for _, c := range dev.CapableEvents(evdev.EV_KEY) {
		if c == needle {
			return true
		}
	}
	return false
}

func deviceIsPointer(dev *evdev.InputDevice) bool {
	var hasRelX, hasRelY bool
	for _, code := range dev.CapableEvents(evdev.EV_REL) {
		if code == evdev.REL_X {
			hasRelX = true
		}
		if code == evdev.REL_Y {
			hasRelY = true
		}
	}
	if hasRelX && hasRelY {
		return true
	}
	return len(dev.CapableEvents(evdev.EV_ABS)) > 0
}

func deviceIsVirtual(dev *evdev.InputDevice, name string) bool {
	id, err := dev.InputID()
	if err == nil && id.BusType == uint16(evdev.BUS_VIRTUAL) {
		return true
	}
	lower := strings.ToLower(name)
	for _, token := range []string{"virtual", "uinput"} {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func isDeviceClosedError(err error) bool {
	return errors.Is(err, syscall.EBADF) || errors.Is(err, syscall.ENODEV)
}

func isWouldBlockError(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
