package naming

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Sonic the Hedgehog", "Sonic the Hedgehog"},
		{"colon", "Castlevania: Bloodlines", "Castlevania_ Bloodlines"},
		{"apostrophe", "Street Fighter II'", "Street Fighter II_"},
		{"every reserved character", `a:b'c/d\e?f*g"h<i>j|k`, "a_b_c_d_e_f_g_h_i_j_k"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeTitle(tt.title)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, SanitizeTitle(got), "sanitizing twice must be a no-op")
		})
	}
}

func TestSanitizeTitle_EachReservedOnce(t *testing.T) {
	for _, r := range `:'/\?*"<>|` {
		got := SanitizeTitle("x" + string(r) + "y")
		assert.Equal(t, "x_y", got, "reserved %q", r)
	}
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		basename  string
		wantStem  string
		wantBase  string
		wantSuf   int
		hasSuffix bool
		wantExt   string
	}{
		{"Mega Man-01.png", "Mega Man-01", "Mega Man", 1, true, ".png"},
		{"Mega Man-12.PNG", "Mega Man-12", "Mega Man", 12, true, ".PNG"},
		{"Contra.jpg", "Contra", "Contra", 0, false, ".jpg"},
		{"Spider-Man.png", "Spider-Man", "Spider-Man", 0, false, ".png"},
		{"Game-1-2.png", "Game-1-2", "Game-1", 2, true, ".png"},
		{"-01.png", "-01", "-01", 0, false, ".png"},
		{"Super Mario Bros. 3.png", "Super Mario Bros. 3", "Super Mario Bros. 3", 0, false, ".png"},
	}
	for _, tt := range tests {
		t.Run(tt.basename, func(t *testing.T) {
			p := ParseFilename(tt.basename)
			assert.Equal(t, tt.wantStem, p.Stem)
			assert.Equal(t, tt.wantBase, p.Base)
			assert.Equal(t, tt.wantSuf, p.Suffix)
			assert.Equal(t, tt.hasSuffix, p.HasSuffix)
			assert.Equal(t, tt.wantExt, p.Ext)
		})
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "Sonic the Hedgehog (USA)", Stem(`Games\Sega Genesis\Sonic the Hedgehog (USA).md`))
	assert.Equal(t, "Sonic", Stem("roms/genesis/Sonic.md"))
	assert.Equal(t, "Sonic", Stem("Sonic"))
	assert.Equal(t, "Dr. Mario (USA)", Stem("Dr. Mario (USA).nes"))
}

func TestNormalizeAndCore(t *testing.T) {
	tests := []struct {
		in       string
		wantNorm string
		wantCore string
	}{
		{"Chrono_Trigger", "Chrono Trigger", "Chrono Trigger"},
		{"Chrono Trigger (USA)", "Chrono Trigger (USA)", "Chrono Trigger"},
		{"Chrono Trigger (USA).sfc", "Chrono Trigger (USA).sfc", "Chrono Trigger .sfc"},
		{"Mega Man-02.png", "Mega Man", "Mega Man"},
		{"Zelda  (Europe) [!]", "Zelda (Europe) [!]", "Zelda"},
		{"Dr. Mario", "Dr. Mario", "Dr. Mario"},
		{"  spaced__out  ", "spaced out", "spaced out"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n := Normalize(tt.in)
			assert.Equal(t, tt.wantNorm, n)
			assert.Equal(t, tt.wantCore, Core(n))
		})
	}
}

func TestGetOutputPath(t *testing.T) {
	out := filepath.Join("out")
	tests := []struct {
		name     string
		platform string
		bucket   string
		video    bool
		want     string
	}{
		{"image with platform", "Sega Genesis", "Box - Front", false, filepath.Join(out, "Sega Genesis", "Box - Front", "Sonic (USA).png")},
		{"image without platform", "", "Clear Logo", false, filepath.Join(out, "Clear Logo", "Sonic (USA).png")},
		{"video bucket", "Sega Genesis", "Trailers", true, filepath.Join(out, "Sega Genesis", "Videos", "Trailers", "Sonic (USA).png")},
		{"root video", "", RootBucket, true, filepath.Join(out, "Videos", "Sonic (USA).png")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetOutputPath(out, tt.platform, tt.bucket, "Sonic (USA)", ".png", tt.video)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenamedAndUnmatchedPath(t *testing.T) {
	src := filepath.Join("videos", "Trailers", "sonic.mp4")
	assert.Equal(t, filepath.Join("videos", "Trailers", "Sonic (USA).mp4"), RenamedPath(src, "Sonic (USA)", ".mp4"))
	assert.Equal(t, filepath.Join("videos", "Unmatched", "Trailers", "sonic.mp4"), UnmatchedPath("videos", "Trailers", src))
}

func TestCollisionResolver(t *testing.T) {
	cr := NewCollisionResolver()

	owner, ok := cr.Claim("a.png", "out/X.png")
	assert.True(t, ok)
	assert.Equal(t, "a.png", owner)

	owner, ok = cr.Claim("a.png", "out/X.png")
	assert.True(t, ok, "re-claim by the owner succeeds")

	owner, ok = cr.Claim("b.png", "out/X.png")
	assert.False(t, ok)
	assert.Equal(t, "a.png", owner)

	cr.Reset()
	owner, ok = cr.Claim("b.png", "out/X.png")
	assert.True(t, ok, "claims are forgotten after Reset")
	assert.Equal(t, "b.png", owner)
}

func TestIsMediaExtension(t *testing.T) {
	for _, ext := range []string{".jpg", ".JPEG", ".png", ".gif", ".bmp", ".mp4", ".MKV", ".webm"} {
		assert.True(t, IsMediaExtension(ext), ext)
	}
	for _, ext := range []string{".sfc", ".md", "", ".txt", strings.ToUpper(".bin")} {
		assert.False(t, IsMediaExtension(ext), ext)
	}
}
