package backup

import (
	"testing"
	"time"
)

func TestStamp_Format(t *testing.T) {
	fixed := time.Date(2020, 3, 14, 15, 12, 34, 0, time.Local)
	old := now
	now = func() time.Time { return fixed }
	defer func() { now = old }()

	if got := Stamp(); got != "20200314T151234" {
		t.Errorf("Stamp() = %q, want %q", got, "20200314T151234")
	}
}

func TestStamp_LexicographicOrderIsChronological(t *testing.T) {
	a := time.Date(2020, 3, 14, 15, 12, 34, 0, time.Local).Format(StampLayout)
	b := time.Date(2020, 3, 14, 15, 12, 35, 0, time.Local).Format(StampLayout)
	c := time.Date(2020, 12, 1, 0, 0, 0, 0, time.Local).Format(StampLayout)
	if !(a < b && b < c) {
		t.Errorf("stamps not lexicographically ordered: %q %q %q", a, b, c)
	}
}

func TestBackupName(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "plain file",
			path: "foobar.baz",
			want: "foobar.baz.bak.20200314T151234",
		},
		{
			name: "absolute path",
			path: "/path/to/file/foobar.baz",
			want: "/path/to/file/foobar.baz.bak.20200314T151234",
		},
		{
			name: "trailing separator stripped",
			path: "somedir/",
			want: "somedir.bak.20200314T151234",
		},
		{
			name: "backup of a backup chains",
			path: "foobar.baz.bak.20200314T151234",
			want: "foobar.baz.bak.20200314T151234.bak.20200314T151234",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BackupName(tt.path, "20200314T151234"); got != tt.want {
				t.Errorf("BackupName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestOriginalPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "full path",
			path: "/path/to/file/foobar.baz.bak.20200314T151234",
			want: "/path/to/file/foobar.baz",
		},
		{
			name: "filename only",
			path: "foobar.baz.bak.20200314T151234",
			want: "foobar.baz",
		},
		{
			name: "multiple chained suffixes",
			path: "foobar.baz.bak.20200314T151234.bak.20200314T151234",
			want: "foobar.baz",
		},
		{
			name: "identity on non-backup path",
			path: "foobar.baz",
			want: "foobar.baz",
		},
		{
			name: "identity on malformed stamp",
			path: "foobar.baz.bak.200200314T151234",
			want: "foobar.baz.bak.200200314T151234",
		},
		{
			name: "identity on stamp without tag",
			path: "foobar.baz.20200314T151234",
			want: "foobar.baz.20200314T151234",
		},
		{
			name: "identity on overlong time",
			path: "foobar.baz.bak.20200314T1512345",
			want: "foobar.baz.bak.20200314T1512345",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OriginalPath(tt.path); got != tt.want {
				t.Errorf("OriginalPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// decode(encode(...encode(P)...)) must return exactly P for any chain
	// of encodes, modeling a backup that is itself backed up repeatedly.
	paths := []string{
		"foobar.baz",
		"/path/to/file/foobar.baz",
		"no-extension",
		".hidden",
	}
	stamps := []string{"20200314T151234", "20200314T151235", "20211231T235959"}

	for _, p := range paths {
		name := p
		for i, stamp := range stamps {
			name = BackupName(name, stamp)
			if got := OriginalPath(name); got != p {
				t.Errorf("round trip depth %d: OriginalPath(%q) = %q, want %q", i+1, name, got, p)
			}
		}
	}
}

func TestFreeBackupName_NoCollision(t *testing.T) {
	got := FreeBackupName("foobar.baz", "20200314T151234", func(string) bool { return false })
	want := "foobar.baz.bak.20200314T151234"
	if got != want {
		t.Errorf("FreeBackupName() = %q, want %q", got, want)
	}
}

func TestFreeBackupName_ChainsOnCollision(t *testing.T) {
	taken := map[string]bool{
		"foobar.baz.bak.20200314T151234":                     true,
		"foobar.baz.bak.20200314T151234.bak.20200314T151234": true,
	}
	got := FreeBackupName("foobar.baz", "20200314T151234", func(p string) bool { return taken[p] })
	want := "foobar.baz.bak.20200314T151234.bak.20200314T151234.bak.20200314T151234"
	if got != want {
		t.Errorf("FreeBackupName() = %q, want %q", got, want)
	}
	if taken[got] {
		t.Error("FreeBackupName() returned an existing name")
	}
	// The chained name still decodes to the original.
	if orig := OriginalPath(got); orig != "foobar.baz" {
		t.Errorf("OriginalPath(%q) = %q, want %q", got, orig, "foobar.baz")
	}
}

func TestIsBackupPath(t *testing.T) {
	if !IsBackupPath("foobar.baz.bak.20200314T151234") {
		t.Error("backup name not recognized")
	}
	if IsBackupPath("foobar.baz") {
		t.Error("plain name misidentified as backup")
	}
	if !IsBackupPath("dir.bak.20200314T151234/") {
		t.Error("backup directory with trailing separator not recognized")
	}
}
