// buzzerd attaches the buzzer device and serves its attribute and
// session interfaces over HTTP.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"buzzerd/core"
	"buzzerd/drivers/memgpio"
	"buzzerd/drivers/serialgpio"
	"buzzerd/host/api"
	"buzzerd/platform"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openDriver selects the GPIO backend from the environment. The
// returned closer releases backend resources at shutdown.
func openDriver() (core.GPIODriver, func() error, error) {
	name := getenv("BUZZER_DRIVER", "mem")
	switch name {
	case "mem":
		return memgpio.New(), func() error { return nil }, nil
	case "linux":
		return openLinuxGPIO(getenv("BUZZER_CHIP", "/dev/gpiochip0"))
	case "serial":
		cfg := serialgpio.DefaultConfig(getenv("BUZZER_SERIAL_PORT", "/dev/ttyACM0"))
		if baud := os.Getenv("BUZZER_SERIAL_BAUD"); baud != "" {
			if _, err := fmt.Sscan(baud, &cfg.Baud); err != nil {
				return nil, nil, fmt.Errorf("invalid BUZZER_SERIAL_BAUD %q", baud)
			}
		}
		drv, err := serialgpio.Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		return drv, drv.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown BUZZER_DRIVER %q", name)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	cfg, err := platform.LoadConfigFile(getenv("BUZZER_CONFIG", "buzzer.json"))
	if err != nil {
		log.Fatalf("Loading hardware description: %v", err)
	}

	gpio, closeDriver, err := openDriver()
	if err != nil {
		log.Fatalf("Opening GPIO driver: %v", err)
	}

	core.SetDebugWriter(func(msg string) { log.Print(msg) })

	dev, err := platform.Attach(cfg, gpio)
	if err != nil {
		log.Fatalf("Attaching buzzer: %v", err)
	}

	listen := getenv("BUZZER_LISTEN", ":8080")
	srv := &http.Server{
		Addr:    listen,
		Handler: api.NewServer(dev).Router(),
	}

	go func() {
		log.Printf("buzzerd serving on %s", listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down")
	srv.Close()
	platform.Detach(dev)
	if err := closeDriver(); err != nil {
		log.Printf("Closing GPIO driver: %v", err)
	}
}
