package cwlog

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"RaidKeeper/cons"
	"RaidKeeper/glob"

	"github.com/sasha-s/go-deadlock"
)

/* Guards glob.LogDesc and glob.LogName */
var logLock deadlock.Mutex

func DoLog(text string) {
	ctime := time.Now()
	_, filename, line, _ := runtime.Caller(1)

	date := fmt.Sprintf("%2v:%2v.%2v", ctime.Hour(), ctime.Minute(), ctime.Second())
	buf := fmt.Sprintf("%v: %15v:%5v: %v\n", date, filepath.Base(filename), line, text)
	fmt.Print(buf)

	logLock.Lock()
	defer logLock.Unlock()

	/* Log file not open yet (or in tests), stdout only */
	if glob.LogDesc == nil {
		return
	}
	_, err := glob.LogDesc.WriteString(buf)
	if err != nil {
		fmt.Println("DoLog: WriteString failure")
		glob.LogDesc.Close()
		glob.LogDesc = nil
		return
	}
}

/* Prep everything for the log */
func StartLog() {
	logLock.Lock()
	defer logLock.Unlock()
	startLog()
}

func startLog() {
	t := time.Now()

	/* Create our log file names */
	glob.LogName = fmt.Sprintf("%v/cw-%v-%v-%v.log", cons.LogDir, t.Day(), t.Month(), t.Year())

	/* Make log directory */
	errr := os.MkdirAll(cons.LogDir, os.ModePerm)
	if errr != nil {
		fmt.Print(errr.Error())
		return
	}

	/* Open log files */
	bdesc, errb := os.OpenFile(glob.LogName, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)

	/* Handle file errors */
	if errb != nil {
		fmt.Printf("An error occurred when attempting to create the log. Details: %s", errb)
		return
	}

	/* Save descriptors, used/closed elsewhere */
	glob.LogDesc = bdesc
}

// ReopenIfMissing recreates the log file if it was deleted. Reports
// whether it did.
func ReopenIfMissing() bool {
	logLock.Lock()
	if _, err := os.Stat(glob.LogName); err == nil {
		logLock.Unlock()
		return false
	}
	if glob.LogDesc != nil {
		glob.LogDesc.Close()
	}
	glob.LogDesc = nil
	startLog()
	logLock.Unlock()

	DoLog("Log file was deleted, recreated.")
	return true
}
