package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	"upbot/internal/adapters/sender"
	"upbot/internal/adapters/source"
	"upbot/internal/core/domain/command"
	"upbot/internal/core/service"

	"github.com/go-telegram/bot"
	"github.com/mymmrac/telego"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "upbot",
		Short:        "Telegram bot answering slash commands",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}

	cobra.OnInitialize(initConfig)

	cmd.PersistentFlags().String("config", "", "Config file path (defaults to ./config.toml).")
	cmd.PersistentFlags().String("log-level", "", "Logging level: debug|info.")
	_ = viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("bot.log_level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "upbot %s\n", version)
		},
	})

	return cmd
}

func initConfig() {
	viper.SetDefault("poll.interval", service.DefaultPollInterval.String())
	viper.SetDefault("poll.timeout", "0s")
	viper.SetDefault("poll.limit", 100)
	viper.SetDefault("bot.log_level", "info")
	_ = viper.BindEnv("telegram.bot_token", "BOT_TOKEN")

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal().Err(err).Msg("could not read config file")
		}
		log.Info().Msg("no config file found, using environment")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)
}

func run(ctx context.Context) error {
	log.Info().Str("version", version).Msg("starting upbot...")

	token := viper.GetString("telegram.bot_token")
	if token == "" {
		log.Fatal().Msg("BOT_TOKEN is not defined")
	}

	b, err := bot.New(token)
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing telegram bot")
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed fetching bot user")
	}

	updatesBot, err := telego.NewBot(token)
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing telegram update client")
	}

	s := sender.NewTelegram(b)

	authorizer, err := service.NewAuthorizer(s)
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing authorizer")
	}

	commandRegistry := &command.Registry{}
	executor := service.NewExecutor(commandRegistry, authorizer, me.Username)
	poller := service.NewPoller(
		source.NewTelegram(updatesBot, viper.GetDuration("poll.timeout"), viper.GetInt("poll.limit")),
		executor,
		viper.GetDuration("poll.interval"),
	)

	commandRegistry.Register("/up", command.NewUp(s, time.Now()).Respond)
	commandRegistry.Register("/help", command.NewHelp(s, commandRegistry).Respond)
	commandRegistry.Register("/debug", command.NewDebug(s, poller.Cursor).Respond)

	log.Info().Str("username", me.Username).Msg("bot listening")

	return poller.Run(ctx)
}
