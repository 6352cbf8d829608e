package core

import (
	"errors"
	"sync"
	"testing"
)

// fakeGPIO is a test implementation of GPIODriver
type fakeGPIO struct {
	mu         sync.Mutex
	levels     map[GPIOPin]bool
	configured map[GPIOPin]bool
	sets       int
}

func newFakeGPIO() *fakeGPIO {
	return &fakeGPIO{
		levels:     make(map[GPIOPin]bool),
		configured: make(map[GPIOPin]bool),
	}
}

func (f *fakeGPIO) ConfigureOutput(pin GPIOPin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.configured[pin] = true
	return nil
}

func (f *fakeGPIO) SetPin(pin GPIOPin, level bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.levels[pin] = level
	f.sets++
	return nil
}

func (f *fakeGPIO) GetPin(pin GPIOPin) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.levels[pin], nil
}

func (f *fakeGPIO) level(pin GPIOPin) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.levels[pin]
}

func (f *fakeGPIO) setCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}

const testPin = GPIOPin(5)

func newTestDevice() (*Device, *fakeGPIO) {
	gpio := newFakeGPIO()
	if err := gpio.ConfigureOutput(testPin); err != nil {
		panic(err)
	}
	dev := NewDevice(gpio, testPin)
	dev.SetDefault(Off)
	return dev, gpio
}

func TestSetDefault(t *testing.T) {
	dev, gpio := newTestDevice()

	dev.SetDefault(On)
	if got := dev.Status(); got != On {
		t.Errorf("Status after SetDefault(On) = %d, want %d", got, On)
	}
	if gpio.level(testPin) != levelLow {
		t.Errorf("Expected line LOW after SetDefault(On)")
	}

	dev.SetDefault(Off)
	if got := dev.Status(); got != Off {
		t.Errorf("Status after SetDefault(Off) = %d, want %d", got, Off)
	}
	if gpio.level(testPin) != levelHigh {
		t.Errorf("Expected line HIGH after SetDefault(Off)")
	}
}

func TestDetachForcesOff(t *testing.T) {
	dev, gpio := newTestDevice()

	sess, err := dev.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := sess.Write([]byte{byte(On)}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	dev.Detach()

	if gpio.level(testPin) != levelHigh {
		t.Errorf("Expected line forced HIGH after detach")
	}
	if got := dev.Status(); got != Off {
		t.Errorf("Status after detach = %d, want %d", got, Off)
	}
	if _, err := dev.Open(); !errors.Is(err, ErrDetached) {
		t.Errorf("Open after detach = %v, want ErrDetached", err)
	}
	if _, err := dev.Store("1"); !errors.Is(err, ErrDetached) {
		t.Errorf("Store after detach = %v, want ErrDetached", err)
	}

	// Second detach is a no-op
	before := gpio.setCount()
	dev.Detach()
	if gpio.setCount() != before {
		t.Errorf("Second detach touched the hardware line")
	}
}

func TestConcurrentOpen(t *testing.T) {
	dev, _ := newTestDevice()

	const n = 16
	var wg sync.WaitGroup
	sessions := make(chan *Session, n)
	busy := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := dev.Open()
			if err != nil {
				busy <- err
				return
			}
			sessions <- sess
		}()
	}
	wg.Wait()
	close(sessions)
	close(busy)

	if len(sessions) != 1 {
		t.Fatalf("Expected exactly 1 successful open, got %d", len(sessions))
	}
	if len(busy) != n-1 {
		t.Fatalf("Expected %d busy results, got %d", n-1, len(busy))
	}
	for err := range busy {
		if !errors.Is(err, ErrBusy) {
			t.Errorf("Losing open returned %v, want ErrBusy", err)
		}
	}

	// Device state stayed consistent and the winner can release it
	if got := dev.Status(); got != Off {
		t.Errorf("Status after open race = %d, want %d", got, Off)
	}
	winner := <-sessions
	winner.Close()
	sess, err := dev.Open()
	if err != nil {
		t.Fatalf("Open after release failed: %v", err)
	}
	sess.Close()
}
