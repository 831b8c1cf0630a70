package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/leandrodaf/midi2/internal/logger"
	"github.com/leandrodaf/midi2/sdk/contracts"
	"github.com/leandrodaf/midi2/sdk/midi"
	"github.com/leandrodaf/midi2/sdk/ump"
)

func main() {
	log := logger.NewZapLogger()

	client, err := midi.NewMIDIClient(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithEventFilter(contracts.UMPEventFilter{
			Types:    []ump.MessageType{ump.MTMIDI2, ump.MTSysEx7},
			Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff},
		}),
	)
	if err != nil {
		log.Error("Failed to initialize MIDI client", log.Field().Error("error", err))
		return
	}

	devices, err := client.ListDevices()
	if err != nil || len(devices) == 0 {
		log.Error("No MIDI devices found or error listing devices", log.Field().Error("error", err))
		return
	}
	fmt.Println("Available MIDI devices:", devices)

	if err = client.SelectDevice(0); err != nil {
		log.Error("Failed to select MIDI device", log.Field().Error("error", err))
		return
	}

	events := make(chan contracts.UMPEvent, 100)
	go func() {
		for event := range events {
			log.Info("UMP event",
				log.Field().Time("timestamp", event.Timestamp),
				log.Field().String("source", event.Source),
				log.Field().Stringer("packet", event.Packet),
			)
		}
	}()

	client.StartCapture(events)
	defer client.Stop()

	fmt.Println("Capturing MIDI events as UMP... Press Ctrl+C to exit.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
}
