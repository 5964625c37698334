// Command pump-guard runs the water-pump fault-management controller: it
// fuses sensor readings, latched safety interrupts and the remote stop
// command into a pump actuation decision, and publishes telemetry over MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mhealy/pump-guard/internal/hw"
	"github.com/mhealy/pump-guard/internal/latch"
	"github.com/mhealy/pump-guard/internal/logic"
	"github.com/mhealy/pump-guard/internal/metrics"
	"github.com/mhealy/pump-guard/internal/mqtt"
	"github.com/mhealy/pump-guard/internal/sense"
	"github.com/mhealy/pump-guard/internal/status"
	"github.com/mhealy/pump-guard/internal/web"
)

func main() {
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	loop := flag.Duration("loop", 5*time.Second, "Control loop interval")
	backoff := flag.Duration("backoff", 5*time.Second, "Reconnect backoff")
	httpAddr := flag.String("http", ":8080", "HTTP status/metrics address (empty to disable)")
	chip := flag.String("chip", hw.DefaultChip, "GPIO character device")
	pinHighWater := flag.Int("pin-highwater", hw.DefaultPinHighWater, "BCM pin for the high-water float switch")
	pinEStop := flag.Int("pin-estop", hw.DefaultPinEmergencyStop, "BCM pin for the emergency-stop button")
	pinPump := flag.Int("pin-pump", hw.DefaultPinPumpRelay, "BCM pin for the pump relay")
	pinFault := flag.Int("pin-fault", hw.DefaultPinFaultLED, "BCM pin for the fault indicator")
	spiPort := flag.String("spi", "", "SPI port for the level ADC (empty for first available)")
	adcChannel := flag.Int("adc-channel", 0, "MCP3008 channel for the level sender")
	w1Bus := flag.String("w1", "", "1-Wire bus for the temperature sensor (empty for first available)")
	levelLow := flag.Float64("level-low", logic.LevelLowPct, "Level percent below which the pump starts")
	levelHigh := flag.Float64("level-high", logic.LevelHighPct, "Level percent above which the pump never runs")
	printState := flag.Bool("print-state", false, "Read sensors once, print, and exit")

	flag.Parse()

	pins := hw.Pins{
		HighWater:     *pinHighWater,
		EmergencyStop: *pinEStop,
		PumpRelay:     *pinPump,
		FaultLED:      *pinFault,
	}
	if err := run(*broker, *loop, *backoff, *httpAddr, *chip, pins, *spiPort, *adcChannel, *w1Bus, *levelLow, *levelHigh, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(broker string, loop, backoff time.Duration, httpAddr, chip string, pins hw.Pins, spiPort string, adcChannel int, w1Bus string, levelLow, levelHigh float64, printState bool) error {
	if err := hw.Init(); err != nil {
		return fmt.Errorf("init host drivers: %w", err)
	}

	// The two safety latches. Their OnEdge methods run on gpiocdev's event
	// goroutine, so an edge during a loop stall is still captured.
	highWaterLatch := &latch.Latch{}
	eStopLatch := &latch.Latch{}

	gpio, err := hw.NewGPIO(chip, pins, highWaterLatch.OnEdge, eStopLatch.OnEdge)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer gpio.Close()

	adc, err := hw.NewMCP3008(spiPort, adcChannel)
	if err != nil {
		return fmt.Errorf("init level adc: %w", err)
	}
	defer adc.Close()

	temp, err := hw.NewDS18B20(w1Bus)
	if err != nil {
		return fmt.Errorf("init temperature sensor: %w", err)
	}
	defer temp.Close()

	reader := sense.NewReader(adc, temp)

	// Print state mode
	if printState {
		m := reader.Read(time.Now())
		fmt.Printf("level: %s%%, temperature: %s C\n",
			mqtt.FormatLevel(m.WaterLevelPct), mqtt.FormatTemperature(m.TemperatureC))
		return nil
	}

	transport := mqtt.NewPahoTransport(broker)
	defer transport.Close()
	channel := mqtt.NewCommandChannel(transport)
	tele := mqtt.NewTelemetryPublisher(transport)

	tracker := status.NewTracker(time.Now(), status.Config{
		LoopMs:       loop.Milliseconds(),
		ReconnectMs:  backoff.Milliseconds(),
		Broker:       broker,
		HTTPAddr:     httpAddr,
		LevelLowPct:  levelLow,
		LevelHighPct: levelHigh,
		TempLimitC:   logic.HighTempThresholdC,
	})

	reg := prometheus.NewRegistry()
	mets := metrics.New(reg)
	channel.OnInvalidCommand = mets.InvalidCommands.Inc

	if httpAddr != "" {
		srv := web.New(httpAddr, tracker, reg)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	eval := logic.NewEvaluator(highWaterLatch.Consume, eStopLatch.Consume)
	ctrl := logic.NewController(levelLow, levelHigh)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("started: loop=%v backoff=%v broker=%s", loop, backoff, broker)

	deps := loopDeps{
		reader:  reader,
		eval:    eval,
		ctrl:    ctrl,
		channel: channel,
		tele:    tele,
		pump:    gpio.Pump(),
		fault:   gpio.Fault(),
		tracker: tracker,
		mets:    mets,
	}
	return runLoop(deps, loop, backoff, time.Now, time.Sleep, sigCh)
}

// loopDeps gathers the collaborators of one control loop.
type loopDeps struct {
	reader  *sense.Reader
	eval    *logic.Evaluator
	ctrl    *logic.Controller
	channel *mqtt.CommandChannel
	tele    *mqtt.TelemetryPublisher
	pump    hw.Output
	fault   hw.Output
	tracker *status.Tracker
	mets    *metrics.Metrics
}

// runLoop executes iterations until a signal arrives. Each iteration is
// strictly ordered: ensure connected (blocking, fixed backoff) → poll →
// read sensors → evaluate faults → decide → apply outputs → publish
// telemetry → sleep. No error in here is fatal; the loop never stops on
// its own.
func runLoop(deps loopDeps, loop, backoff time.Duration, now func() time.Time, sleep func(time.Duration), sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			return shutdown(deps, s)
		default:
		}

		// Reconnect until the command channel is up. The backoff blocks
		// the loop; the safety latches keep capturing edges regardless.
		for !deps.channel.Connected() {
			deps.tracker.AddReconnect()
			deps.mets.Reconnects.Inc()
			if err := deps.channel.Reconnect(); err != nil {
				log.Printf("mqtt reconnect: %v", err)
				deps.tracker.SetMQTT(deps.channel.State().String(), false)
				sleep(backoff)
				select {
				case s := <-sig:
					return shutdown(deps, s)
				default:
				}
				continue
			}
			log.Printf("mqtt connected")
		}

		deps.channel.Poll()

		m := deps.reader.Read(now())
		faults := deps.eval.Evaluate(m, deps.channel.StopRequested())
		decision := deps.ctrl.Decide(m, faults)

		// Apply outputs every iteration; the relay driver is idempotent.
		if err := deps.pump.Set(decision.ShouldRun); err != nil {
			log.Printf("pump relay: %v", err)
		}
		if err := deps.fault.Set(faults.Any()); err != nil {
			log.Printf("fault indicator: %v", err)
		}

		if err := deps.tele.Publish(m, faults); err != nil {
			log.Printf("publish error: %v", err)
			deps.tracker.AddPublish(false)
			deps.mets.PublishFailures.Inc()
		} else {
			deps.tracker.AddPublish(true)
		}

		deps.tracker.Update(m, faults, decision.ShouldRun)
		deps.tracker.SetMQTT(deps.channel.State().String(), deps.channel.Connected())
		deps.mets.Observe(m, faults, decision.ShouldRun)

		sleep(loop)
	}
}

// shutdown releases the pump relay and exits. Latched faults are not
// persisted anywhere: a restart always begins unfaulted.
func shutdown(deps loopDeps, s os.Signal) error {
	log.Printf("received %v, shutting down", s)
	if err := deps.pump.Set(false); err != nil {
		log.Printf("release pump relay: %v", err)
	}
	return nil
}
