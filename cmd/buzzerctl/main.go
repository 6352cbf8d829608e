// buzzerctl is an interactive console for a locally attached buzzer.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"buzzerd/core"
	"buzzerd/drivers/memgpio"
	"buzzerd/drivers/serialgpio"
	"buzzerd/platform"
)

var (
	driver       = flag.String("driver", "mem", "GPIO backend: mem, linux or serial")
	chip         = flag.String("chip", "/dev/gpiochip0", "GPIO chip device (linux driver)")
	port         = flag.String("port", "/dev/ttyACM0", "Serial device path (serial driver)")
	baud         = flag.Int("baud", 115200, "Baud rate (serial driver)")
	configPath   = flag.String("config", "", "Hardware description file (overrides -pin/-default)")
	pin          = flag.Uint("pin", 0, "Buzzer GPIO line number")
	defaultState = flag.String("default", "", "Default state at attachment: on or off")
)

func openDriver() (core.GPIODriver, func() error, error) {
	switch *driver {
	case "mem":
		return memgpio.New(), func() error { return nil }, nil
	case "linux":
		return openLinuxGPIO(*chip)
	case "serial":
		cfg := serialgpio.DefaultConfig(*port)
		cfg.Baud = *baud
		drv, err := serialgpio.Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		return drv, drv.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown driver %q", *driver)
}

func loadConfig() (*platform.Config, error) {
	if *configPath != "" {
		return platform.LoadConfigFile(*configPath)
	}
	line := uint32(*pin)
	return &platform.Config{Gpios: &line, DefaultState: *defaultState}, nil
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading hardware description: %v\n", err)
		os.Exit(1)
	}

	gpio, closeDriver, err := openDriver()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening GPIO driver: %v\n", err)
		os.Exit(1)
	}
	defer closeDriver()

	dev, err := platform.Attach(cfg, gpio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: attaching buzzer: %v\n", err)
		os.Exit(1)
	}
	defer platform.Detach(dev)

	fmt.Println("buzzerctl - interactive buzzer console")
	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")

	var sess *core.Session
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]

		switch cmd {
		case "quit", "exit", "q":
			if sess != nil {
				sess.Close()
			}
			fmt.Println("Goodbye!")
			return

		case "help", "?":
			printHelp()

		case "open":
			if sess != nil {
				fmt.Println("Session already open")
				continue
			}
			s, err := dev.Open()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			sess = s
			fmt.Println("Session opened")

		case "close":
			if sess == nil {
				fmt.Println("No open session")
				continue
			}
			sess.Close()
			sess = nil
			fmt.Println("Session released")

		case "write":
			if sess == nil {
				fmt.Println("Open a session first")
				continue
			}
			if len(parts) != 2 {
				fmt.Println("Usage: write <byte>")
				continue
			}
			val, err := strconv.ParseUint(parts[1], 10, 8)
			if err != nil {
				fmt.Println("Usage: write <byte>")
				continue
			}
			if err := sess.Write([]byte{byte(val)}); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case "status", "show":
			fmt.Print(dev.Show())

		case "store":
			if len(parts) != 2 {
				fmt.Println("Usage: store <value>")
				continue
			}
			n, err := dev.Store(parts[1])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Printf("Accepted %d bytes\n", n)

		default:
			fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", cmd)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  open           - Open an exclusive session")
	fmt.Println("  write <byte>   - Command a state through the session (1=on, 0=off)")
	fmt.Println("  close          - Release the session")
	fmt.Println("  status         - Read the attribute state")
	fmt.Println("  store <value>  - Write the attribute state")
	fmt.Println("  quit/exit/q    - Exit the program")
	fmt.Println()
}
