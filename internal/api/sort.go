package api

import (
	"cmp"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

type sortError struct {
	field string
}

func (e *sortError) Error() string {
	return fmt.Sprintf("cannot sort by %q", e.field)
}

type compareFunc[T any] func(a, b T) int

var serverSortKeys = map[string]compareFunc[*ServerResponse]{
	"id":            func(a, b *ServerResponse) int { return cmp.Compare(a.ID, b.ID) },
	"hostname":      func(a, b *ServerResponse) int { return strings.Compare(a.Hostname, b.Hostname) },
	"ip_address":    func(a, b *ServerResponse) int { return strings.Compare(a.IPAddress, b.IPAddress) },
	"detected_os":   func(a, b *ServerResponse) int { return strings.Compare(a.DetectedOS, b.DetectedOS) },
	"open_ports":    func(a, b *ServerResponse) int { return strings.Compare(a.OpenPorts, b.OpenPorts) },
	"last_scan":     func(a, b *ServerResponse) int { return a.LastScan.Compare(b.LastScan) },
	"is_reachable":  func(a, b *ServerResponse) int { return compareBool(a.IsReachable, b.IsReachable) },
	"scan_time":     func(a, b *ServerResponse) int { return a.ScanTime.Compare(b.ScanTime) },
	"backup_status": func(a, b *ServerResponse) int { return strings.Compare(a.BackupStatus, b.BackupStatus) },
	"verdict":       func(a, b *ServerResponse) int { return strings.Compare(a.Verdict, b.Verdict) },
}

var fileSortKeys = map[string]compareFunc[*FileResponse]{
	"id":            func(a, b *FileResponse) int { return cmp.Compare(a.ID, b.ID) },
	"filename":      func(a, b *FileResponse) int { return strings.Compare(a.Filename, b.Filename) },
	"filepath":      func(a, b *FileResponse) int { return strings.Compare(a.Filepath, b.Filepath) },
	"last_modified": func(a, b *FileResponse) int { return a.LastModified.Compare(b.LastModified) },
	"size":          func(a, b *FileResponse) int { return cmp.Compare(a.Size, b.Size) },
	"scan_time":     func(a, b *FileResponse) int { return a.ScanTime.Compare(b.ScanTime) },
}

// sortItems stable sorts items by the "sort" query field, descending when
// "order" is "desc". No sort field leaves items in store order.
func sortItems[T any](r *http.Request, items []T, keys map[string]compareFunc[T]) error {
	field := r.URL.Query().Get("sort")

	if field == "" {
		return nil
	}

	compare, ok := keys[field]

	if !ok {
		return &sortError{field: field}
	}

	desc := r.URL.Query().Get("order") == "desc"

	slices.SortStableFunc(items, func(a, b T) int {
		if desc {
			return compare(b, a)
		}

		return compare(a, b)
	})

	return nil
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
