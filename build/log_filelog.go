// +build filelog

package build

import "os"

var logf *os.File

// Write writes the byte slice to the iotasdk.log file.
func (w *LogWriter) Write(b []byte) (int, error) {
	return logf.Write(b)
}

func init() {
	var err error
	logf, err = os.Create("iotasdk.log")
	if err != nil {
		panic(err)
	}
}
