package export

import (
	"time"

	"github.com/ginjaninja78/daily-sales/pkg/utils"
)

// Extensions lists the file types written by the export sinks and the
// workbook exporter.
var Extensions = []string{".txt", ".pdf", ".xlsx"}

// Prune removes exports in fm's output directory older than retention. Only
// files with an export extension and the NameFormat prefix are touched. A zero
// retention keeps everything.
func Prune(fm *utils.FileManager, retention time.Duration, now time.Time) (int, error) {
	if retention <= 0 {
		return 0, nil
	}
	return fm.CleanOldOutputs(retention, now, Extensions...)
}
