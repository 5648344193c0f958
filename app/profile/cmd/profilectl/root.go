package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iWorld-y/customer_profile/app/profile/internal/conf"
	"github.com/iWorld-y/customer_profile/app/profile/internal/data"
	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
	"github.com/iWorld-y/customer_profile/app/profile/pkg/logger"
)

// Settings 命令行配置，优先级：flag > PROFILE_* 环境变量 > 配置文件
type Settings struct {
	ConfigFile string
	LogLevel   string
	Source     string
	File       string
	DBDriver   string
	DBSource   string
}

// RootCommand creates and returns the root command
func RootCommand() *cobra.Command {
	settings := &Settings{}
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "profilectl",
		Short:         "Customer profile dashboard tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(
		reportCommand(settings),
		tuiCommand(settings),
		seedCommand(settings),
		dumpCommand(settings),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := loadSettings(v, cmd, settings); err != nil {
			return err
		}
		return logger.InitLogger(settings.LogLevel, "")
	}
	return rootCmd
}

func setupFlags(rootCmd *cobra.Command, settings *Settings) {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&settings.ConfigFile, "conf", "c", "", "Path to the server config file (yaml)")
	flags.StringVar(&settings.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&settings.Source, "source", "builtin", "Dataset source: builtin, yaml, database")
	flags.StringVar(&settings.File, "file", "", "Dataset file for the yaml source")
	flags.StringVar(&settings.DBDriver, "db-driver", "sqlite", "Database driver: sqlite, postgres")
	flags.StringVar(&settings.DBSource, "db-source", "", "Database DSN for the database source")
}

// loadSettings 合并配置文件、环境变量和命令行参数
func loadSettings(v *viper.Viper, cmd *cobra.Command, settings *Settings) error {
	v.SetEnvPrefix("PROFILE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("data.source", "builtin")
	v.SetDefault("data.database.driver", "sqlite")

	if settings.ConfigFile != "" {
		v.SetConfigFile(settings.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", settings.ConfigFile, err)
		}
	}

	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"log.level":            "log-level",
		"data.source":          "source",
		"data.file":            "file",
		"data.database.driver": "db-driver",
		"data.database.source": "db-source",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("error binding flag %s: %w", flag, err)
		}
	}

	settings.LogLevel = v.GetString("log.level")
	settings.Source = v.GetString("data.source")
	settings.File = v.GetString("data.file")
	settings.DBDriver = v.GetString("data.database.driver")
	settings.DBSource = v.GetString("data.database.source")
	return nil
}

func (s *Settings) dataConf() *conf.Data {
	return &conf.Data{
		Source: s.Source,
		File:   s.File,
		Database: &conf.Database{
			Driver: s.DBDriver,
			Source: s.DBSource,
		},
	}
}

// loadDataset 按当前配置加载并校验数据集
func loadDataset(ctx context.Context, s *Settings) (*domain.Dataset, error) {
	provider, closeProvider, err := data.NewProvider(ctx, s.dataConf())
	if err != nil {
		return nil, err
	}
	defer closeProvider()

	ds, err := provider.LoadDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", provider.Name(), err)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset from %s: %w", provider.Name(), err)
	}
	logger.Log.Debugf("dataset loaded from %s: %d entities", provider.Name(), len(ds.Entities))
	return ds, nil
}
