package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/uzeuro/association-api/internal/auth"
	"github.com/uzeuro/association-api/internal/blob"
	"github.com/uzeuro/association-api/internal/config"
	"github.com/uzeuro/association-api/internal/contact"
	"github.com/uzeuro/association-api/internal/content"
	"github.com/uzeuro/association-api/internal/database"
	"github.com/uzeuro/association-api/internal/logging"
	"github.com/uzeuro/association-api/internal/membership"
	"github.com/uzeuro/association-api/internal/notify"
	"github.com/uzeuro/association-api/internal/registration"
	"github.com/uzeuro/association-api/internal/server"
	"github.com/uzeuro/association-api/internal/settings"
)

var (
	cfgFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "association-api",
		Short: "UZEURO association website backend service",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	setupFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().String("http-address", defaults.GetString("http.address"), "HTTP listen address")
	cmd.PersistentFlags().String("database-path", defaults.GetString("database.path"), "SQLite database path")
	cmd.PersistentFlags().String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("admin-email", defaults.GetString("admin.email"), "Administrative notification address")
	cmd.PersistentFlags().String("mail-endpoint", defaults.GetString("mail.endpoint"), "Transactional email send endpoint")
	cmd.PersistentFlags().String("telegram-bot-token", "", "Telegram bot token for admin notifications")
	cmd.PersistentFlags().Int64("telegram-chat-id", 0, "Telegram chat id for admin notifications")
	cmd.PersistentFlags().String("signing-secret", "", "Admin session signing secret (overrides env)")

	bindFlag(cmd, "http.address", "http-address")
	bindFlag(cmd, "database.path", "database-path")
	bindFlag(cmd, "log.level", "log-level")
	bindFlag(cmd, "admin.email", "admin-email")
	bindFlag(cmd, "mail.endpoint", "mail-endpoint")
	bindFlag(cmd, "telegram.bot_token", "telegram-bot-token")
	bindFlag(cmd, "telegram.chat_id", "telegram-chat-id")
	bindFlag(cmd, "auth.signing_secret", "signing-secret")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() error {
	// Missing .env is fine; deployments configure through real env vars.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if cfgFile != "" && errors.As(err, &configNotFound) {
			return err
		}
	}

	return nil
}

func runServer(ctx context.Context) error {
	appConfig, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(appConfig.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	db, err := database.OpenSQLite(appConfig.DatabasePath, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	contentService, err := content.NewService(content.ServiceConfig{Database: db, Logger: logger})
	if err != nil {
		return err
	}
	membershipService, err := membership.NewService(membership.ServiceConfig{Database: db, Logger: logger})
	if err != nil {
		return err
	}
	registrationService, err := registration.NewService(registration.ServiceConfig{Database: db, Logger: logger})
	if err != nil {
		return err
	}
	contactService, err := contact.NewService(contact.ServiceConfig{Database: db, Logger: logger})
	if err != nil {
		return err
	}
	settingsService, err := settings.NewService(settings.ServiceConfig{Database: db, Logger: logger})
	if err != nil {
		return err
	}
	blobStore, err := blob.NewStore(blob.StoreConfig{Database: db, Logger: logger})
	if err != nil {
		return err
	}

	notifier := buildNotifier(appConfig, logger)
	defer notifier.Flush()

	signingSecret := appConfig.SigningSecret
	if signingSecret == "" {
		// Ephemeral secret: admin sessions do not survive a restart.
		signingSecret = uuid.NewString()
		logger.Warn("auth.signing_secret not configured, using ephemeral secret")
	}
	tokenIssuer := auth.NewTokenIssuer(auth.TokenIssuerConfig{
		SigningSecret: []byte(signingSecret),
		Issuer:        "association-api",
		Audience:      "association-admin",
		TokenTTL:      appConfig.TokenTTL,
	})

	handler, err := server.NewHTTPHandler(server.Dependencies{
		Content:      contentService,
		Membership:   membershipService,
		Registration: registrationService,
		Contact:      contactService,
		Settings:     settingsService,
		Blobs:        blobStore,
		Notifier:     notifier,
		Tokens:       tokenIssuer,
		Credentials:  auth.Credentials{Username: appConfig.AdminUsername, Password: appConfig.AdminPassword},
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    appConfig.HTTPAddress,
		Handler: handler,
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("address", appConfig.HTTPAddress))
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-signalCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func buildNotifier(appConfig config.AppConfig, logger *zap.Logger) *notify.Notifier {
	var senders []notify.Sender

	emailSender, err := notify.NewEmailSender(notify.EmailSenderConfig{
		Endpoint:    appConfig.MailEndpoint,
		FromAddress: appConfig.MailFromAddress,
		FromName:    appConfig.MailFromName,
		To:          appConfig.AdminEmail,
	})
	if err != nil {
		logger.Warn("email notifications disabled", zap.Error(err))
	} else {
		senders = append(senders, emailSender)
	}

	if appConfig.TelegramToken != "" && appConfig.TelegramChatID != 0 {
		telegramSender, err := notify.NewTelegramSender(notify.TelegramSenderConfig{
			BotToken: appConfig.TelegramToken,
			ChatID:   appConfig.TelegramChatID,
		})
		if err != nil {
			logger.Warn("telegram notifications disabled", zap.Error(err))
		} else {
			senders = append(senders, telegramSender)
		}
	}

	return notify.NewNotifier(notify.NotifierConfig{Senders: senders, Logger: logger})
}
