// =============================================================================
// Branch Sales Aggregator - Record File Discovery
// =============================================================================
//
// This module scans the run directory for daily record files and returns
// them in date order. A record file is a regular file named by exactly eight
// digits followed by ".rcd", e.g. "00010101.rcd". Directories and other
// entries with a matching name are ignored.
//
// Sequence validation lives in the validation package and runs on the sorted
// output before any record file is opened.
//
// =============================================================================

package discovery

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/ginjaninja78/branch-sales/internal/failure"
	"github.com/ginjaninja78/branch-sales/internal/types"
	"github.com/ginjaninja78/branch-sales/internal/validation"
	"github.com/ginjaninja78/branch-sales/pkg/utils"
)

// Discover lists the record files in dir sorted by ascending date stamp.
func Discover(fs afero.Fs, dir string) ([]types.RecordFile, error) {
	fm := utils.NewFileManager(fs, dir)

	names, err := fm.ListRegularFiles(validation.IsRecordFileName)
	if err != nil {
		return nil, failure.New(failure.Unexpected).Wrap(err)
	}

	files := make([]types.RecordFile, 0, len(names))
	for _, name := range names {
		stamp, err := dateStamp(name)
		if err != nil {
			return nil, failure.New(failure.Unexpected).WithFile(name).Wrap(err)
		}
		files = append(files, types.RecordFile{
			DateStamp: stamp,
			Name:      name,
			Path:      fm.Path(name),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].DateStamp < files[j].DateStamp
	})

	return files, nil
}

// dateStamp parses the digits of a record file name.
func dateStamp(name string) (int, error) {
	return strconv.Atoi(strings.TrimSuffix(name, validation.RecordExt))
}
