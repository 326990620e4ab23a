package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"

	"github.com/otsproject/ots/internal/core/domain"
)

const (
	// DatadirKey is the key to customize the ots datadir.
	DatadirKey = "DATADIR"
	// DatabaseTypeKey is the key to customize the type of database to use.
	DatabaseTypeKey = "DATABASE_TYPE"
	// NetworkKey is the key to customize the Monero network.
	NetworkKey = "NETWORK"
	// LogLevelKey is the key to customize the log level to catch more specific
	// or more high level logs.
	LogLevelKey = "LOG_LEVEL"
	// KeyJarCapacityKey is the key to customize the number of keys the key
	// jar retains before evicting anonymous entries.
	KeyJarCapacityKey = "KEY_JAR_CAPACITY"

	// DbLocation is the folder inside the datadir containing db files.
	DbLocation = "db"
)

var (
	vip *viper.Viper

	defaultDatadir        = btcutil.AppDataDir("ots", false)
	defaultDbType         = "badger"
	defaultLogLevel       = 4
	defaultNetwork        = domain.NetworkMain.String()
	defaultKeyJarCapacity = 64

	supportedNetworks = supportedType{
		domain.NetworkMain.String():  {},
		domain.NetworkTest.String():  {},
		domain.NetworkStage.String(): {},
	}
	SupportedDbs = supportedType{
		"badger":   {},
		"inmemory": {},
	}
)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("OTS")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(DatabaseTypeKey, defaultDbType)
	vip.SetDefault(NetworkKey, defaultNetwork)
	vip.SetDefault(LogLevelKey, defaultLogLevel)
	vip.SetDefault(KeyJarCapacityKey, defaultKeyJarCapacity)

	if err := validate(); err != nil {
		log.Fatalf("invalid config: %s", err)
	}

	if err := initDatadir(); err != nil {
		log.Fatalf("config: error while creating datadir: %s", err)
	}
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	net := GetString(NetworkKey)
	if len(net) == 0 {
		return fmt.Errorf("network must not be null")
	}
	if _, ok := supportedNetworks[net]; !ok {
		return fmt.Errorf(
			"unknown network, must be one of: %s", supportedNetworks,
		)
	}

	dbType := GetString(DatabaseTypeKey)
	if _, ok := SupportedDbs[dbType]; !ok {
		return fmt.Errorf(
			"unsupported database type, must be one of %s", SupportedDbs,
		)
	}

	if capacity := GetInt(KeyJarCapacityKey); capacity <= 0 {
		return fmt.Errorf("key jar capacity must be a positive number")
	}

	return nil
}

func GetDatadir() string {
	return filepath.Join(GetString(DatadirKey), GetString(NetworkKey))
}

func GetNetwork() domain.Network {
	net, _ := domain.ParseNetwork(GetString(NetworkKey))
	return net
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func Set(key string, val interface{}) {
	vip.Set(key, val)
}

func Unset(key string) {
	vip.Set(key, nil)
}

func IsSet(key string) bool {
	return vip.IsSet(key)
}

func initDatadir() error {
	datadir := GetDatadir()
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

type supportedType map[string]struct{}

func (t supportedType) String() string {
	types := make([]string, 0, len(t))
	for tt := range t {
		types = append(types, tt)
	}
	return strings.Join(types, " | ")
}
