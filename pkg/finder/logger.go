package finder

import (
	"log"
	"os"
)

// Logger is the default logger for finder.
var Logger = log.New(os.Stdout, "", log.LstdFlags)
