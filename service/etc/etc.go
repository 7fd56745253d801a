package etc

import (
	"bytes"
	_ "embed"
	"os"
	"sort"
	"strings"
	"time"

	"hwgrade/grading"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the loaded configuration.
var Config *Configuration

//go:embed config.sample.yaml
var DefaultConfig []byte

// Homework is a gradable homework: the packages whose tests are run and the questions
// the tests are graded for.
type Homework struct {
	Packages  []string           `mapstructure:"packages"`
	Questions []grading.Question `mapstructure:"questions"`
}

// Configuration is the Configuration structure.
type Configuration struct {
	LogLevel string `mapstructure:"log_level"`

	Runner struct {
		// GoBinary is the go command used to run the tests.
		GoBinary string        `mapstructure:"go_binary"`
		Args     []string      `mapstructure:"args"`
		Dir      string        `mapstructure:"dir"`
		Repeat   int           `mapstructure:"repeat"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"runner"`

	Listener struct {
		ShowTestCases      bool   `mapstructure:"show_test_cases"`
		ShowTestNames      bool   `mapstructure:"show_test_names"`
		ShowSuccesses      bool   `mapstructure:"show_successes"`
		ShowInlineFailures bool   `mapstructure:"show_inline_failures"`
		ShowEnvironment    bool   `mapstructure:"show_environment"`
		ShowRunningGrade   bool   `mapstructure:"show_running_grade"`
		Color              string `mapstructure:"color"`
	} `mapstructure:"listener"`

	Homeworks map[string]Homework `mapstructure:"homeworks"`

	// Git is the authentication used to clone submissions over http.
	Git struct {
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
	} `mapstructure:"git"`

	Server struct {
		Addr string `mapstructure:"addr"`
		// TokenSecret signs the access tokens. A random secret is used if empty.
		TokenSecret     string        `mapstructure:"token_secret"`
		TokenExpiration time.Duration `mapstructure:"token_expiration"`
	} `mapstructure:"server"`

	Report struct {
		// Path is a local file the report is written to, none if empty.
		Path string `mapstructure:"path"`
		// Prefix is the object prefix of reports in the storage.
		Prefix string `mapstructure:"prefix"`
	} `mapstructure:"report"`

	Database struct {
		Enabled  bool `mapstructure:"enabled"`
		Postgres struct {
			Host     string `mapstructure:"host"`
			Port     int    `mapstructure:"port"`
			User     string `mapstructure:"user"`
			Password string `mapstructure:"password"`
			DBName   string `mapstructure:"dbname"`
			UseSSL   bool   `mapstructure:"use_ssl"`
		} `mapstructure:"postgres"`
		// Redis keeps the latest report of each homework.
		Redis struct {
			Enabled  bool   `mapstructure:"enabled"`
			Addr     string `mapstructure:"addr"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"database"`

	Storage struct {
		// Type is the type of storage (none, local or minio).
		Type  string `mapstructure:"type"`
		Local struct {
			// Path is the path to the storage directory.
			Path string `mapstructure:"path"`
		} `mapstructure:"local"`
		MinIO struct {
			Endpoint        string `mapstructure:"endpoint"`
			AccessKeyID     string `mapstructure:"access_key_id"`
			SecretAccessKey string `mapstructure:"secret_access_key"`
			UseSSL          bool   `mapstructure:"use_ssl"`
			Bucket          string `mapstructure:"bucket"`
		} `mapstructure:"minio"`
	} `mapstructure:"storage"`
}

// Homework returns the homework with the given name.
func (c *Configuration) Homework(name string) (*Homework, error) {
	hw, ok := c.Homeworks[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown homework '%s', known: %s",
			name, strings.Join(c.HomeworkNames(), ", "))
	}
	return &hw, nil
}

// HomeworkNames returns the names of all homeworks in order.
func (c *Configuration) HomeworkNames() []string {
	names := make([]string, 0, len(c.Homeworks))
	for name := range c.Homeworks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rubric builds the rubric of the named homework.
func (c *Configuration) Rubric(name string) (*grading.Rubric, error) {
	hw, err := c.Homework(name)
	if err != nil {
		return nil, err
	}
	rubric, err := grading.NewRubric(strings.ToLower(name), hw.Questions)
	if err != nil {
		return nil, errors.Wrapf(err, "homework %s", name)
	}
	return rubric, nil
}

// SetLogLevel sets the level of the standard logger.
func SetLogLevel(level string) error {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "fatal":
		log.SetLevel(log.FatalLevel)
	case "panic":
		log.SetLevel(log.PanicLevel)
	default:
		return errors.Errorf("invalid log level '%s'", level)
	}
	return nil
}

// Load reads the configuration from path, or from "config.yaml" in the working
// directory or /etc/hwgrade/ if path is empty. The embedded sample configuration is
// used when no configuration file is found.
//
// Values can be overridden by environment variables, e.g. HWGRADE_RUNNER_REPEAT,
// which may also be set in a ".env" file.
func Load(path string) (*Configuration, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warning("Failed to load .env")
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("hwgrade")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/hwgrade/")
		if err := v.ReadInConfig(); err != nil {
			log.WithError(err).Debug("Failed to read config, use default config")
			if err := v.ReadConfig(bytes.NewReader(DefaultConfig)); err != nil {
				return nil, errors.Wrap(err, "read default config")
			}
		}
	}

	config := &Configuration{}
	if err := v.UnmarshalExact(config, func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
		dc.ZeroFields = true
	}); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := SetLogLevel(config.LogLevel); err != nil {
		return nil, err
	}
	Config = config
	log.WithField("file", v.ConfigFileUsed()).Debug("Loaded config")
	return config, nil
}

func init() {
	log.SetFormatter(&nested.Formatter{})
}
