package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Demo        DemoCommand        `command:"demo" description:"Run a scripted gripper session in the simulator"`
	Teleoperate TeleoperateCommand `command:"teleoperate" alias:"teleop" description:"Drive the simulated gripper from a physical leader rig"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "qibullet - simulated Pepper gripper control"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
