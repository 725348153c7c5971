package entity

import (
	"testing"
	"time"
)

func TestDocumentRecordMatches(t *testing.T) {
	mtime := time.Date(2026, 8, 29, 10, 30, 0, 123456789, time.UTC)

	tests := []struct {
		name    string
		record  DocumentRecord
		size    int64
		modTime time.Time
		want    bool
	}{
		{
			name:    "identical fingerprint",
			record:  DocumentRecord{SizeBytes: 420, ModTime: mtime},
			size:    420,
			modTime: mtime,
			want:    true,
		},
		{
			name: "stored mtime lost nanoseconds in the database",
			record: DocumentRecord{
				SizeBytes: 420,
				ModTime:   mtime.Truncate(time.Microsecond),
			},
			size:    420,
			modTime: mtime,
			want:    true,
		},
		{
			name:    "size changed",
			record:  DocumentRecord{SizeBytes: 420, ModTime: mtime},
			size:    421,
			modTime: mtime,
			want:    false,
		},
		{
			name:    "mtime changed",
			record:  DocumentRecord{SizeBytes: 420, ModTime: mtime},
			size:    420,
			modTime: mtime.Add(time.Second),
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Matches(tt.size, tt.modTime); got != tt.want {
				t.Errorf("Matches(%d, %v) = %v, want %v", tt.size, tt.modTime, got, tt.want)
			}
		})
	}
}
