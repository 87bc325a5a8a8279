package watch

import (
	"fmt"
	"log"

	notify "github.com/bitly/go-notify"
	"github.com/ttacon/chalk"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/event"
)

// ConsoleObserver traces match events to the terminal. It subscribes to the
// match event topic and prints from its own goroutine, so the tick loop
// never waits on terminal io.
type ConsoleObserver struct {
	match   Match
	events  chan interface{}
	quit    chan struct{}
	stopped chan struct{}
}

func NewConsoleObserver(m Match) *ConsoleObserver {
	obs := &ConsoleObserver{
		match:   m,
		events:  make(chan interface{}, 32),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	notify.Start(m.EventTopic(), obs.events)
	go obs.loop()

	return obs
}

func (obs *ConsoleObserver) Stop() {
	notify.Stop(obs.match.EventTopic(), obs.events)
	close(obs.quit)
	<-obs.stopped
}

func (obs *ConsoleObserver) loop() {
	defer close(obs.stopped)

	for {
		var raw interface{}

		select {
		case <-obs.quit:
			return
		case raw = <-obs.events:
		}

		e, ok := raw.(event.Event)
		if !ok {
			continue
		}

		switch e := e.(type) {
		case event.EventGoal:
			snap := obs.match.State()
			log.Print(chalk.Green)
			log.Printf("%s GOAL for %s (player %d) %d:%d", clockString(e.Time), e.Team, e.ScorerID, snap.HomeGoals, snap.AwayGoals)
			log.Print(chalk.Reset)
		case event.EventKickoff:
			log.Printf("%s kickoff: %s", clockString(e.Time), e.Team)
		case event.EventFoul:
			log.Print(chalk.Yellow)
			log.Printf("%s foul by player %d on player %d", clockString(e.Time), e.ByID, e.OnID)
			log.Print(chalk.Reset)
		case event.EventOutOfBounds:
			log.Printf("%s %s out of bounds", clockString(e.Time), e.Entity)
		case event.EventAnomaly:
			log.Print(chalk.Red)
			log.Printf("%s anomaly (%s): %s", clockString(e.Time), e.Kind, e.Detail)
			log.Print(chalk.Reset)
		case event.EventFullTime:
			log.Print(chalk.Blue)
			log.Printf("%s full time %d:%d", clockString(e.Time), e.HomeGoals, e.AwayGoals)
			log.Print(chalk.Reset)
		}
	}
}

func clockString(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("[%02d:%02d]", total/60, total%60)
}
