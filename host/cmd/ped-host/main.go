package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/caarlos0/env"

	"picoped/host/link"
	"picoped/host/script"
	"picoped/host/serial"
	"picoped/protocol"
)

// EnvConfig is read from the environment; flags override it
type EnvConfig struct {
	Device      string `env:"PED_DEVICE" envDefault:"/dev/ttyACM0"`
	Baud        int    `env:"PED_BAUD" envDefault:"115200"`
	ReadTimeout int    `env:"PED_READ_TIMEOUT_MS" envDefault:"100"`
}

func main() {
	cfg := new(EnvConfig)
	if err := env.Parse(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid environment: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.Device, "device", cfg.Device, "Serial device path")
	flag.IntVar(&cfg.Baud, "baud", cfg.Baud, "Baud rate (ignored for USB CDC)")
	send := flag.String("send", "", "Send these command bytes and exit")
	scriptPath := flag.String("script", "", "Run this YAML command script and exit")
	flag.Parse()

	fmt.Println("PED Host - USB-Serial stepper console")
	fmt.Println("=====================================")

	fmt.Printf("Connecting to controller on %s...\n", cfg.Device)
	portCfg := serial.DefaultConfig(cfg.Device)
	portCfg.Baud = cfg.Baud
	portCfg.ReadTimeout = cfg.ReadTimeout
	l, err := link.Dial(portCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer l.Close()

	if banner := l.ReadBanner(); banner != "" {
		fmt.Printf("Controller says: %s\n", banner)
	}
	if err := l.Discard(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if *send != "" {
		if err := l.Send([]byte(*send)...); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *scriptPath != "" {
		if err := runScript(context.Background(), l, *scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	shell := ishell.New()
	shell.Println("Enter commands (type 'help' for available commands, 'exit' to quit)")
	registerCommands(shell, l)
	shell.Start()
}

func registerCommands(shell *ishell.Shell, l *link.Link) {
	simple := []struct {
		name string
		help string
		run  func() error
	}{
		{"turn", "start one turn at the configured steps per turn", l.StartTurn},
		{"cancel", "cancel the running turn and stop pulsing", l.CancelTurn},
	}
	for _, s := range simple {
		s := s
		shell.AddCmd(&ishell.Cmd{
			Name: s.name,
			Help: s.help,
			Func: func(c *ishell.Context) {
				if err := s.run(); err != nil {
					c.Err(err)
				}
			},
		})
	}

	toggles := []struct {
		name string
		help string
		set  func(bool) error
	}{
		{"pulse", "pulse <on|off> - continuous pulse mode", l.SetPulse},
		{"enable", "enable <on|off> - driver enable line", l.SetEnable},
		{"dir", "dir <on|off> - direction line", l.SetDirection},
		{"led", "led <on|off> - auxiliary LED line", l.SetLED},
	}
	for _, tg := range toggles {
		tg := tg
		shell.AddCmd(&ishell.Cmd{
			Name: tg.name,
			Help: tg.help,
			Func: func(c *ishell.Context) {
				if len(c.Args) != 1 {
					c.Println("usage: " + tg.help)
					return
				}
				on, err := parseOnOff(c.Args[0])
				if err != nil {
					c.Err(err)
					return
				}
				if err := tg.set(on); err != nil {
					c.Err(err)
				}
			},
		})
	}

	shell.AddCmd(&ishell.Cmd{
		Name: "steps",
		Help: "steps <200|400|...|51200> - edges per turn for the next turn",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Println("usage: steps <edges>")
				return
			}
			edges, err := strconv.ParseUint(c.Args[0], 10, 32)
			if err != nil {
				c.Err(fmt.Errorf("invalid steps %q: %w", c.Args[0], err))
				return
			}
			if err := l.SetStepsPerTurn(uint32(edges)); err != nil {
				c.Err(err)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "freq",
		Help: "freq <hz> - select the closest supported pulse rate",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Println("usage: freq <hz>")
				return
			}
			hz, err := strconv.ParseFloat(c.Args[0], 64)
			if err != nil {
				c.Err(fmt.Errorf("invalid frequency %q: %w", c.Args[0], err))
				return
			}
			halfPeriod, err := l.SetFrequency(hz)
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("Half period %dus (%.2f Hz)\n", halfPeriod, protocol.FrequencyHz(halfPeriod))
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "raw",
		Help: "raw <bytes> - send command bytes as typed",
		Func: func(c *ishell.Context) {
			for _, arg := range c.Args {
				for _, b := range []byte(arg) {
					if protocol.Describe(b) == "" {
						c.Printf("Warning: %q is not a command, the controller will ignore it\n", b)
					}
				}
				if err := l.Send([]byte(arg)...); err != nil {
					c.Err(err)
					return
				}
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "run",
		Help: "run <file.yaml> - play a command script",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Println("usage: run <file.yaml>")
				return
			}
			if err := runScript(context.Background(), l, c.Args[0]); err != nil {
				c.Err(err)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "codes",
		Help: "list the command bytes",
		Func: func(c *ishell.Context) {
			for b := 0; b < 128; b++ {
				if d := protocol.Describe(byte(b)); d != "" {
					c.Printf("  %c  0x%02X  %s\n", b, b, d)
				}
			}
		},
	})
}

func runScript(ctx context.Context, l *link.Link, path string) error {
	s, err := script.Load(path)
	if err != nil {
		return err
	}
	name := s.Name
	if name == "" {
		name = path
	}
	fmt.Printf("Running %s (%d steps)\n", name, len(s.Steps))
	return s.Run(ctx, l)
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "high", "1":
		return true, nil
	case "off", "low", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
