package cfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"RaidKeeper/cons"
)

func TestReadCfgAcceptsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		// bot credentials
		"Token": "abc",
		"App": "123",
		"RecruitingChannels": ["1029102392601497682",],
		/* save hourly */
		"SaveIntervalMinutes": 15,
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	if !ReadCfgFrom(path) {
		t.Fatal("ReadCfgFrom failed")
	}
	if Config.Token != "abc" || Config.App != "123" {
		t.Errorf("credentials = %q/%q", Config.Token, Config.App)
	}
	if !IsRecruitingChannel("1029102392601497682") {
		t.Error("recruiting channel not recognised")
	}
	if IsRecruitingChannel("1") {
		t.Error("unexpected recruiting channel")
	}
	if SaveInterval() != 15*time.Minute {
		t.Errorf("SaveInterval = %v", SaveInterval())
	}
	if Config.DataDir != cons.DefaultDataDir {
		t.Errorf("DataDir default = %q", Config.DataDir)
	}
}

func TestReadCfgMissingFileUsesDefaults(t *testing.T) {
	if !ReadCfgFrom(filepath.Join(t.TempDir(), "missing.json")) {
		t.Fatal("missing config should not fail")
	}
	if Config.SaveIntervalMinutes != cons.DefaultSaveInterval {
		t.Errorf("SaveIntervalMinutes = %v", Config.SaveIntervalMinutes)
	}
	if Config.NatsPrefix != cons.DefaultNatsPrefix {
		t.Errorf("NatsPrefix = %q", Config.NatsPrefix)
	}
}

func TestWriteCfgRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	Config = serverConfig{Token: "t", Guild: "42", DataDir: "d", SaveIntervalMinutes: 5, NatsPrefix: "p."}
	if !WriteCfgTo(path) {
		t.Fatal("WriteCfgTo failed")
	}
	Config = serverConfig{}
	if !ReadCfgFrom(path) {
		t.Fatal("ReadCfgFrom failed")
	}
	if Config.Guild != "42" || Config.DataDir != "d" {
		t.Errorf("round trip lost fields: %+v", Config)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}
