package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"RaidKeeper/cfg"
	"RaidKeeper/command"
	"RaidKeeper/cons"
	"RaidKeeper/cwlog"
	"RaidKeeper/db"
	"RaidKeeper/disc"
	"RaidKeeper/events"
	"RaidKeeper/glob"
	"RaidKeeper/metrics"

	"github.com/bwmarrin/discordgo"
	"github.com/sasha-s/go-deadlock"
	"github.com/spf13/pflag"
)

const version = "0.1.0"

func main() {
	glob.ConfigPath = pflag.String("config", cons.ConfigFile, "path to the config file")
	glob.DoRegisterCommands = pflag.Bool("register-commands", false, "register discord commands on start")
	glob.DoDeregisterCommands = pflag.Bool("deregister-commands", false, "deregister discord commands on exit")
	glob.TestMode = pflag.Bool("test-mode", false, "report lock-order problems and lock waits over 30s")
	pflag.Parse()

	/* Lock checking is for test runs only */
	if *glob.TestMode {
		deadlock.Opts.DeadlockTimeout = time.Second * 30
	} else {
		deadlock.Opts.Disable = true
	}

	glob.Uptime = time.Now().UTC().Round(time.Second)
	cwlog.StartLog()

	cfg.ReadCfg()
	cfg.WriteCfg()

	metrics.InitMetrics()
	metrics.ServeMetrics(cfg.Config.MetricsAddr)

	pub, err := events.Connect(cfg.Config.NatsURL, cfg.Config.NatsPrefix)
	if err != nil {
		cwlog.DoLog(err.Error() + ", events disabled.")
		pub = nil
	}

	runs := db.NewRunStore(cfg.RunMapPath())
	if err := runs.Load(); err != nil {
		cwlog.DoLog("Problems loading runs: " + err.Error())
	}
	cwlog.DoLog(fmt.Sprintf("Loaded %v runs.", runs.Len()))

	ctx, cancel := context.WithCancel(context.Background())
	saved := make(chan struct{})
	go func() {
		runs.SaveLoop(ctx, cfg.SaveInterval())
		close(saved)
	}()
	disc.MainLoop(ctx)

	announcer := &disc.Announcer{Events: pub}
	handler := command.NewHandler(ctx, runs, pub, announcer)

	go startbot(handler, announcer)

	/* Wait here for process signals */
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	cwlog.DoLog("Shutting down.")
	/* SaveLoop does the final save on cancel */
	cancel()
	<-saved
	command.ClearCommands()
	if disc.Session != nil {
		disc.Session.Close()
	}
	pub.Close()
}

var DiscordConnectAttempts int

func startbot(h *command.Handler, a *disc.Announcer) {
	if cfg.Config.Token == "" {
		cwlog.DoLog("No discord token.")
		return
	}

	cwlog.DoLog("RaidKeeper " + version + " starting.")
	bot, err := discordgo.New("Bot " + cfg.Config.Token)

	if err != nil {
		cwlog.DoLog(fmt.Sprintf("An error occurred when attempting to create the Discord session. Details: %v", err))
		time.Sleep(time.Minute * 5)
		DiscordConnectAttempts++

		if DiscordConnectAttempts < cons.MaxDiscordAttempts {
			startbot(h, a)
		}
		return
	}

	bot.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages | discordgo.IntentMessageContent)

	a.Session = bot
	bot.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		botReady(s, r, h)
	})
	bot.AddHandler(h.Interaction)
	bot.AddHandler(h.MessageUpdate)
	bot.AddHandler(h.MessageDelete)
	errb := bot.Open()

	if errb != nil {
		cwlog.DoLog(fmt.Sprintf("An error occurred when attempting to create the Discord session. Details: %v", errb))
		time.Sleep(time.Minute * 5)
		DiscordConnectAttempts++

		if DiscordConnectAttempts < cons.MaxDiscordAttempts {
			startbot(h, a)
		}
		return
	}

	bot.LogLevel = discordgo.LogWarning
}

func botReady(s *discordgo.Session, r *discordgo.Ready, h *command.Handler) {
	disc.Session = s
	disc.Ready = r

	/* Ready fires again on every reconnect */
	if glob.ServerRunning {
		cwlog.DoLog("Discord reconnected")
		return
	}

	if *glob.DoRegisterCommands {
		command.RegisterCommands(s)
	}

	/* Runs loaded from disk need their reveal waits back */
	for _, run := range h.Runs.All() {
		h.StartReveal(run)
	}
	if err := h.Events.ServeState(h.Runs); err != nil {
		cwlog.DoLog(err.Error())
	}

	glob.ServerRunning = true
	cwlog.DoLog("Discord bot ready")
}
