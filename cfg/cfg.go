package cfg

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"RaidKeeper/cons"
	"RaidKeeper/cwlog"
	"RaidKeeper/glob"

	"github.com/tidwall/jsonc"
)

var Config serverConfig

type serverConfig struct {
	Token string
	App   string
	Guild string

	/* Channels where a post may be registered as a run */
	RecruitingChannels []string

	DataDir             string
	SaveIntervalMinutes int

	MetricsAddr string
	NatsURL     string
	NatsPrefix  string
}

func configPath() string {
	if glob.ConfigPath != nil && *glob.ConfigPath != "" {
		return *glob.ConfigPath
	}
	return cons.ConfigFile
}

func applyDefaults(c *serverConfig) {
	if c.DataDir == "" {
		c.DataDir = cons.DefaultDataDir
	}
	if c.SaveIntervalMinutes <= 0 {
		c.SaveIntervalMinutes = cons.DefaultSaveInterval
	}
	if c.NatsPrefix == "" {
		c.NatsPrefix = cons.DefaultNatsPrefix
	}
}

func WriteCfg() bool {
	return WriteCfgTo(configPath())
}

func WriteCfgTo(finalPath string) bool {
	tempPath := finalPath + ".tmp"

	outbuf := new(bytes.Buffer)
	enc := json.NewEncoder(outbuf)
	enc.SetIndent("", "\t")

	if err := enc.Encode(Config); err != nil {
		cwlog.DoLog("WriteCfg: enc.Encode failure")
		return false
	}

	err := os.WriteFile(tempPath, outbuf.Bytes(), 0644)
	if err != nil {
		cwlog.DoLog("WriteCfg: WriteFile failure")
		return false
	}

	err = os.Rename(tempPath, finalPath)
	if err != nil {
		cwlog.DoLog("WriteCfg: Couldn't rename cfg file.")
		return false
	}

	return true
}

func ReadCfg() bool {
	return ReadCfgFrom(configPath())
}

/* Comments and trailing commas are allowed in the config file */
func ReadCfgFrom(path string) bool {

	_, err := os.Stat(path)
	notfound := os.IsNotExist(err)

	if notfound {
		cwlog.DoLog("ReadCfg: os.Stat failed, empty config generated.")
		Config = serverConfig{}
		applyDefaults(&Config)
		return true
	}

	file, err := os.ReadFile(path)
	if file == nil || err != nil {
		cwlog.DoLog("ReadCfg: ReadFile failure")
		return false
	}

	newcfg := serverConfig{}
	err = json.Unmarshal(jsonc.ToJSON(file), &newcfg)
	if err != nil {
		cwlog.DoLog("ReadCfg: Unmarshal failure")
		cwlog.DoLog(err.Error())
		return false
	}

	applyDefaults(&newcfg)
	Config = newcfg
	return true
}

func IsRecruitingChannel(channelID string) bool {
	for _, c := range Config.RecruitingChannels {
		if c == channelID {
			return true
		}
	}
	return false
}

func SaveInterval() time.Duration {
	return time.Minute * time.Duration(Config.SaveIntervalMinutes)
}

func RunMapPath() string {
	return filepath.Join(Config.DataDir, cons.RunMapFile)
}
