package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"

	"github.com/fatih/color"

	fx "github.com/robotalks/edgeline/pkg/framework"
	"github.com/robotalks/edgeline/pkg/report"
	"github.com/robotalks/edgeline/pkg/report/mqtt"
	"github.com/robotalks/edgeline/pkg/report/stream"
)

var (
	mqttURL   = "mqtt://localhost:1883/edgeline/"
	showTrace = true

	listenAddr string
)

func init() {
	if val := os.Getenv("EDGELINE_MONITOR_MQTT_URL"); val != "" {
		mqttURL = val
	} else if val := mqtt.FirstURL(os.Getenv("EDGELINE_REPORT_URL")); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL, empty to disable.")
	flag.StringVar(&listenAddr, "listen", listenAddr, "Accept tcp report streams on this address.")
	flag.BoolVar(&showTrace, "trace", showTrace, "Print the waveform trace of each frame.")
}

var actionColors = map[report.Action]func(string, ...interface{}) string{
	report.ActionCapture: color.New(color.FgHiBlue).SprintfFunc(),
	report.ActionStore:   color.New(color.FgGreen).SprintfFunc(),
	report.ActionReplay:  color.New(color.FgYellow).SprintfFunc(),
}

func printReport(source string, payload []byte) {
	r, err := report.Decode(payload)
	if err != nil {
		log.Printf("%s: bad report: %v", source, err)
		return
	}
	summary := r.Summary()
	if colorize, ok := actionColors[r.Action]; ok {
		summary = colorize("%s", summary)
	}
	log.Printf("%s: %s", source, summary)
	if showTrace && r.Trace != "" {
		log.Printf("%s: %s", source, r.Trace)
	}
}

func serveStream(conn net.Conn) {
	defer conn.Close()
	source := conn.RemoteAddr().String()
	rw := stream.New(conn)
	for {
		pkt, err := rw.ReadPacket()
		if err != nil {
			log.Printf("%s: disconnected: %v", source, err)
			return
		}
		printReport(source, pkt)
	}
}

func listen(ctx context.Context) error {
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	log.Printf("listening on %s", ln.Addr())
	return fx.RunWithContextCloser(ctx, ln, func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return err
			}
			go serveStream(conn)
		}
	})
}

func subscribe(runner *fx.Runner) {
	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	r := mqtt.NewReader(q, mqtt.FramesPattern)
	go func() {
		for pkt := range r.Packets() {
			printReport(pkt.Topic, pkt.Payload)
		}
	}()
	runner.Go(fx.NamedRun("mqtt", r))
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	runner := fx.NewRunner().HandleSignals()
	if listenAddr != "" {
		runner.Go(fx.NamedRun("listen", fx.RunFunc(listen)))
	}
	if mqttURL != "" {
		subscribe(runner)
	}
	if err := runner.Wait(); err != nil {
		log.Fatalln(err)
	}
}
