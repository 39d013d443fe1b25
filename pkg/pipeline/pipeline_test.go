package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/deckgen/pkg/cache"
	"github.com/matzehuels/deckgen/pkg/compose"
	"github.com/matzehuels/deckgen/pkg/errors"
)

// textPayload is a generic payload without charts or tables.
const textPayload = `{
	"search_phrase": "Quarterly Review",
	"slides": [
		{"title": "Overview", "headline": "Steady quarter", "content": "Revenue held flat against Q2."},
		{"title": "Outlook", "content": "Guidance unchanged."}
	]
}`

// chartPayload carries one inline chart so compose renders an image.
const chartPayload = `{
	"search_phrase": "Energy Mix",
	"slides": [
		{
			"title": "Generation Share",
			"content": "Renewables keep growing.",
			"chartType": "pie",
			"chartData": {"labels": ["Solar", "Wind", "Gas"], "values": [30, 25, 45]}
		}
	]
}`

func TestValidateColor(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{"#FFFFFF", false},
		{"#0f1632", false},
		{"#ABC", false},
		{"FFFFFF", true}, // missing #
		{"#GGHHII", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateColor(tt.color)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateForDecode(t *testing.T) {
	// Missing payload and input path
	opts := Options{}
	if err := opts.ValidateForDecode(); err == nil {
		t.Error("Missing payload/input_path should fail")
	}

	// Inline payload
	opts = Options{Payload: []byte(textPayload)}
	if err := opts.ValidateForDecode(); err != nil {
		t.Errorf("Inline payload should pass: %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger default should be set")
	}

	// Input path
	opts = Options{InputPath: "payload.json"}
	if err := opts.ValidateForDecode(); err != nil {
		t.Errorf("Input path should pass: %v", err)
	}
}

func TestOptionsComposeDefaults(t *testing.T) {
	opts := Options{}
	opts.SetComposeDefaults()

	if opts.RowBudget != DefaultRowBudget {
		t.Errorf("RowBudget should be %d, got %d", DefaultRowBudget, opts.RowBudget)
	}
	if opts.Logger == nil {
		t.Error("Logger default should be set")
	}
}

func TestOptionsValidateForCompose(t *testing.T) {
	// Valid overrides
	opts := Options{Background: "#101010", TextColor: "#EEE", Accent: "#FF9800"}
	if err := opts.ValidateForCompose(); err != nil {
		t.Errorf("Valid colors should pass: %v", err)
	}

	// Invalid override
	opts = Options{Accent: "bright red"}
	if err := opts.ValidateForCompose(); err == nil {
		t.Error("Invalid accent should fail")
	}

	// Empty overrides are fine
	opts = Options{}
	if err := opts.ValidateForCompose(); err != nil {
		t.Errorf("No overrides should pass: %v", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Payload: []byte(textPayload)}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalRowBudget := opts.RowBudget

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.RowBudget != originalRowBudget {
		t.Error("RowBudget changed on second call")
	}
}

func TestOptionsShouldVerify(t *testing.T) {
	opts := Options{}
	if !opts.ShouldVerify() {
		t.Error("Default should verify")
	}

	opts.NoVerify = true
	if opts.ShouldVerify() {
		t.Error("NoVerify=true should not verify")
	}
}

func TestOptionsTheme(t *testing.T) {
	// No overrides returns the configured theme
	opts := Options{}
	theme := opts.Theme()
	def := compose.DefaultTheme()
	if theme.Background != def.Background || theme.TextColor != def.TextColor {
		t.Error("Theme without overrides should match the default")
	}

	// Overrides apply
	opts = Options{Background: "#101010", TextColor: "#EEEEEE", Accent: "#FF9800"}
	theme = opts.Theme()
	if theme.Background != "#101010" {
		t.Errorf("Background override not applied: %s", theme.Background)
	}
	if theme.TextColor != "#EEEEEE" {
		t.Errorf("TextColor override not applied: %s", theme.TextColor)
	}
	if theme.Palette[0] != "#FF9800" {
		t.Errorf("Accent should replace Palette[0]: %s", theme.Palette[0])
	}

	// The default palette must not be mutated by the override
	if compose.DefaultTheme().Palette[0] == "#FF9800" {
		t.Error("Accent override mutated the default palette")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		phrase string
		want   string
	}{
		{"Quarterly Review", "Quarterly_Review_Presentation.pptx"},
		{"ESG", "ESG_Presentation.pptx"},
		{"Global / Energy: 2024?", "Global__Energy_2024_Presentation.pptx"},
		{"", "Business_Analysis_Presentation.pptx"},
		{"!!!", "Business_Analysis_Presentation.pptx"},
		{"  spaced  out  ", "spaced__out_Presentation.pptx"},
	}

	for _, tt := range tests {
		if got := Filename(tt.phrase); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.phrase, got, tt.want)
		}
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{Payload: []byte(textPayload)})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !bytes.HasPrefix(result.PPTX, []byte("PK")) {
		t.Error("PPTX should be a zip archive")
	}
	if result.Filename != "Quarterly_Review_Presentation.pptx" {
		t.Errorf("Filename = %q", result.Filename)
	}
	// Title slide + two content blocks + takeaways
	if result.SlideCount != 4 {
		t.Errorf("SlideCount = %d, want 4", result.SlideCount)
	}
	if result.Stats.Total <= 0 {
		t.Error("Stats.Total should be positive")
	}
	if result.Stats.VerifyTime <= 0 {
		t.Error("Verify should have run")
	}
}

func TestExecuteSkipsVerify(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Payload:  []byte(textPayload),
		NoVerify: true,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Stats.VerifyTime != 0 {
		t.Error("VerifyTime should be zero when verification is skipped")
	}
}

func TestExecuteWritesOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.pptx")

	r := NewRunner(nil, nil, nil)
	defer r.Close()

	if _, err := r.Execute(context.Background(), Options{
		Payload:    []byte(textPayload),
		OutputPath: out,
	}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Output file missing: %v", err)
	}
	if err := Verify(data); err != nil {
		t.Errorf("Written output failed verification: %v", err)
	}
}

func TestExecuteFromFile(t *testing.T) {
	in := filepath.Join(t.TempDir(), "payload.json")
	if err := os.WriteFile(in, []byte(textPayload), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{InputPath: in})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.SlideCount == 0 {
		t.Error("Expected slides from file payload")
	}
}

func TestExecuteChartCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	ctx := context.Background()

	// First run renders the chart fresh
	first, err := r.Execute(ctx, Options{Payload: []byte(chartPayload)})
	if err != nil {
		t.Fatalf("First execute failed: %v", err)
	}
	if first.Stats.Cache.ChartMisses != 1 || first.Stats.Cache.ChartHits != 0 {
		t.Errorf("First run cache = %+v, want 1 miss", first.Stats.Cache)
	}

	// Second run serves the chart from cache
	second, err := r.Execute(ctx, Options{Payload: []byte(chartPayload)})
	if err != nil {
		t.Fatalf("Second execute failed: %v", err)
	}
	if second.Stats.Cache.ChartHits != 1 || second.Stats.Cache.ChartMisses != 0 {
		t.Errorf("Second run cache = %+v, want 1 hit", second.Stats.Cache)
	}

	// Refresh bypasses the cache
	third, err := r.Execute(ctx, Options{Payload: []byte(chartPayload), Refresh: true})
	if err != nil {
		t.Fatalf("Refresh execute failed: %v", err)
	}
	if third.Stats.Cache.ChartHits != 0 || third.Stats.Cache.ChartMisses != 1 {
		t.Errorf("Refresh run cache = %+v, want 1 miss", third.Stats.Cache)
	}

	// A different text color misses: styling is part of the key
	styled, err := r.Execute(ctx, Options{Payload: []byte(chartPayload), TextColor: "#AABBCC"})
	if err != nil {
		t.Fatalf("Styled execute failed: %v", err)
	}
	if styled.Stats.Cache.ChartHits != 0 || styled.Stats.Cache.ChartMisses != 1 {
		t.Errorf("Styled run cache = %+v, want 1 miss", styled.Stats.Cache)
	}
}

func TestExecuteDecodeErrorKeepsCode(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	_, err := r.Execute(context.Background(), Options{Payload: []byte(`{"neither": true}`)})
	if err == nil {
		t.Fatal("Unrecognized payload should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPayload) {
		t.Errorf("Error should keep its payload code: %v", err)
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	// No input at all
	if _, err := r.Execute(context.Background(), Options{}); err == nil {
		t.Error("Empty options should fail")
	}

	// Bad theme override
	if _, err := r.Execute(context.Background(), Options{
		Payload: []byte(textPayload),
		Accent:  "not-a-color",
	}); err == nil {
		t.Error("Invalid accent should fail")
	}
}

func TestEncodeAndVerify(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	opts := Options{Payload: []byte(textPayload)}
	payload, err := r.Decode(opts)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	prs, err := r.Compose(context.Background(), payload, opts)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	data, err := Encode(prs)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if err := Verify(data); err != nil {
		t.Errorf("Verify failed: %v", err)
	}

	// Corrupt bytes fail verification with the verify code
	err = Verify(data[:20])
	if err == nil {
		t.Fatal("Truncated archive should fail verification")
	}
	if !errors.Is(err, errors.ErrCodeVerifyFailed) {
		t.Errorf("Verify error should carry the verify code: %v", err)
	}
}
