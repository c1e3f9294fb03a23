// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/csv"
	"fmt"
	"github.com/SoftbearStudios/truchet/truchet"
	"os"
	"sync"
	"time"
)

// renderLogMutex keeps concurrent renders from interleaving rows.
var renderLogMutex sync.Mutex

// AppendLog appends one CSV row to filename, creating it if needed.
func AppendLog(filename string, fields []interface{}) (err error) {
	renderLogMutex.Lock()
	defer renderLogMutex.Unlock()

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)

	fieldStrings := make([]string, 0, len(fields))
	for _, field := range fields {
		var fieldString string

		switch v := field.(type) {
		case float32, float64:
			fieldString = fmt.Sprintf("%.2f", v)
		case time.Duration:
			fieldString = fmt.Sprintf("%.2f", v.Seconds()*1000)
		default:
			fieldString = fmt.Sprint(v)
		}

		fieldStrings = append(fieldStrings, fieldString)
	}

	if err = w.Write(fieldStrings); err != nil {
		return
	}
	w.Flush()
	return w.Error()
}

// logRender records a finished render as
// unix,seed,palette,width,height,leaves,containers,noise ms,forest ms,compose ms.
func logRender(filename string, result *truchet.Result) error {
	b := result.Image.Bounds()
	return AppendLog(filename, []interface{}{
		result.Finished.Unix(),
		result.Config.Seed,
		result.Palette.Name,
		b.Dx(),
		b.Dy(),
		result.Stats.TotalLeaves(),
		result.Stats.TotalContainers(),
		result.Timings[truchet.StageNoise],
		result.Timings[truchet.StageForest],
		result.Timings[truchet.StageCompose],
	})
}
