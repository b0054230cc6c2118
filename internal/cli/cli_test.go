package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// mustRun runs the CLI against dir and decodes the JSON envelope.
func mustRun(t *testing.T, dir string, args ...string) map[string]any {
	t.Helper()
	out, errOut, err := runCLI(t, append([]string{"--dir", dir}, args...))
	if err != nil {
		t.Fatalf("%v: %v\nstderr: %s", args, err, errOut)
	}
	var env map[string]any
	if err := json.Unmarshal(out, &env); err != nil {
		t.Fatalf("%v: decode %q: %v", args, out, err)
	}
	return env
}

func setupForm(t *testing.T) string {
	t.Helper()
	t.Setenv("FORMBUILDER_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()
	mustRun(t, dir, "init", "--name", "Intake")
	mustRun(t, dir, "pages", "add", "Visit")
	mustRun(t, dir, "sections", "add", "0", "S1")
	mustRun(t, dir, "sections", "add", "0", "S2")
	for _, id := range []string{"a", "b", "c"} {
		mustRun(t, dir, "questions", "add", "0", "0", "--id", id, "--label", strings.ToUpper(id))
	}
	mustRun(t, dir, "questions", "add", "0", "1", "--id", "d", "--label", "D")
	return dir
}

func questionIDs(t *testing.T, dir string) []string {
	t.Helper()
	env := mustRun(t, dir, "questions", "list")
	var out []string
	for _, row := range env["data"].([]any) {
		out = append(out, row.(map[string]any)["id"].(string))
	}
	return out
}

func sectionQuestionIDs(t *testing.T, dir string, section int) []string {
	t.Helper()
	env := mustRun(t, dir, "show")
	pages := env["data"].(map[string]any)["pages"].([]any)
	sections := pages[0].(map[string]any)["sections"].([]any)
	qs, _ := sections[section].(map[string]any)["questions"].([]any)
	out := []string{}
	for _, q := range qs {
		out = append(out, q.(map[string]any)["id"].(string))
	}
	return out
}

func TestInit_CreatesFormWithUUID(t *testing.T) {
	t.Setenv("FORMBUILDER_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	env := mustRun(t, dir, "init", "--name", "Intake", "--encounter-type", "enc-1")
	data := env["data"].(map[string]any)
	if data["created"] != true {
		t.Fatalf("expected created=true: %v", data)
	}
	sc := data["schema"].(map[string]any)
	if sc["name"] != "Intake" || sc["encounterType"] != "enc-1" || sc["processor"] != "EncounterFormProcessor" {
		t.Fatalf("unexpected schema: %v", sc)
	}
	if uuid, _ := sc["uuid"].(string); uuid == "" {
		t.Fatalf("expected uuid")
	}

	again := mustRun(t, dir, "init")
	if again["data"].(map[string]any)["created"] != false {
		t.Fatalf("second init should not create")
	}
}

func TestQuestionsMove_WithinAndAcrossSections(t *testing.T) {
	dir := setupForm(t)

	env := mustRun(t, dir, "questions", "move", "a", "--after", "c")
	if env["data"].(map[string]any)["outcome"] != "moved" {
		t.Fatalf("unexpected result: %v", env)
	}
	if got := strings.Join(sectionQuestionIDs(t, dir, 0), ","); got != "b,c,a" {
		t.Fatalf("S1 = %s", got)
	}

	// Drag ids and drop zones are accepted too: b is question-0-0-0, d sits in S2.
	mustRun(t, dir, "questions", "move", "question-0-0-0", "--after", "droppable-question-0-1-0")
	if got := strings.Join(sectionQuestionIDs(t, dir, 0), ","); got != "c,a" {
		t.Fatalf("S1 = %s", got)
	}
	if got := strings.Join(sectionQuestionIDs(t, dir, 1), ","); got != "d,b" {
		t.Fatalf("S2 = %s", got)
	}
}

func TestQuestionsMove_UnknownTargetLeavesFormUnchanged(t *testing.T) {
	dir := setupForm(t)
	before := questionIDs(t, dir)

	_, stderr, err := runCLI(t, []string{"--dir", dir, "questions", "move", "a", "--after", "ghost"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), "relocation target not found") {
		t.Fatalf("stderr = %s", stderr)
	}
	if got := questionIDs(t, dir); strings.Join(got, ",") != strings.Join(before, ",") {
		t.Fatalf("ids changed: %v -> %v", before, got)
	}
}

func TestQuestionsMove_SameNodeIsNoop(t *testing.T) {
	dir := setupForm(t)
	env := mustRun(t, dir, "questions", "move", "b", "--after", "b")
	if env["data"].(map[string]any)["outcome"] != "same-node" {
		t.Fatalf("unexpected result: %v", env)
	}
}

func TestQuestionsDuplicate(t *testing.T) {
	dir := setupForm(t)
	env := mustRun(t, dir, "questions", "duplicate", "b")
	if env["data"].(map[string]any)["id"] != "bDuplicate" {
		t.Fatalf("unexpected duplicate: %v", env["data"])
	}
	notes, _ := env["notifications"].([]any)
	if len(notes) != 1 {
		t.Fatalf("expected one notification, got %v", env["notifications"])
	}
	if got := strings.Join(sectionQuestionIDs(t, dir, 0), ","); got != "a,b,c,bDuplicate" {
		t.Fatalf("S1 = %s", got)
	}
}

func TestGroupQuestions_NestedMove(t *testing.T) {
	dir := setupForm(t)
	mustRun(t, dir, "questions", "add", "0", "1", "--id", "vitals", "--label", "Vitals", "--group")

	// An empty group has no drop zone; give it a sub-question first.
	file := filepath.Join(t.TempDir(), "vitals.json")
	body := `{"id":"vitals","label":"Vitals","type":"obsGroup","questionOptions":{"rendering":"group"},"questions":[{"id":"height","label":"Height","type":"obs","questionOptions":{"rendering":"text"}}]}`
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	mustRun(t, dir, "questions", "edit", "vitals", "--file", file)

	mustRun(t, dir, "questions", "move", "a", "--after", "height")
	env := mustRun(t, dir, "questions", "list")
	rows := env["data"].([]any)
	var aRow map[string]any
	for _, r := range rows {
		if r.(map[string]any)["id"] == "a" {
			aRow = r.(map[string]any)
		}
	}
	if aRow["kind"] != "obsQuestion" || aRow["dragId"] != "question-0-1-1-1" {
		t.Fatalf("unexpected row for a: %v", aRow)
	}

	// And back out again.
	mustRun(t, dir, "questions", "move", "a", "--after", "b")
	if got := strings.Join(sectionQuestionIDs(t, dir, 0), ","); got != "b,a,c" {
		t.Fatalf("S1 = %s", got)
	}
}

func TestQuestionsEdit_GroupFlagsKeepSubQuestions(t *testing.T) {
	dir := setupForm(t)
	file := filepath.Join(t.TempDir(), "g.json")
	body := `{"id":"g","label":"G","type":"obsGroup","questionOptions":{"rendering":"group"},"questions":[{"id":"x","label":"X","type":"obs","questionOptions":{"rendering":"text"}}]}`
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	mustRun(t, dir, "questions", "add", "0", "0", "--file", file)
	before := strings.Join(questionIDs(t, dir), ",")

	mustRun(t, dir, "questions", "edit", "g", "--id", "g", "--label", "Vitals", "--group")
	if got := strings.Join(questionIDs(t, dir), ","); got != before {
		t.Fatalf("ids = %s, want %s", got, before)
	}
	env := mustRun(t, dir, "show")
	sec := env["data"].(map[string]any)["pages"].([]any)[0].(map[string]any)["sections"].([]any)[0].(map[string]any)
	qs := sec["questions"].([]any)
	g := qs[len(qs)-1].(map[string]any)
	if g["label"] != "Vitals" {
		t.Fatalf("group not relabelled: %v", g)
	}
}

func TestQuestionsEdit_RejectsTakenID(t *testing.T) {
	dir := setupForm(t)
	_, stderr, err := runCLI(t, []string{"--dir", dir, "questions", "edit", "a", "--id", "b", "--label", "A"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), "question id already used: b") {
		t.Fatalf("stderr = %s", stderr)
	}
	if got := strings.Join(questionIDs(t, dir), ","); got != "a,b,c,d" {
		t.Fatalf("ids = %s", got)
	}

	// Keeping the same id is an ordinary edit.
	mustRun(t, dir, "questions", "edit", "a", "--id", "a", "--label", "Alpha")
}

func TestRenames_AndBlankLabel(t *testing.T) {
	dir := setupForm(t)

	env := mustRun(t, dir, "sections", "rename", "0", "1", "Vitals")
	if env["data"].(map[string]any)["changed"] != true {
		t.Fatalf("unexpected: %v", env)
	}
	env = mustRun(t, dir, "pages", "rename", "0", " ")
	data := env["data"].(map[string]any)
	if data["changed"] != false || data["label"] != "Visit" {
		t.Fatalf("blank rename should keep label: %v", data)
	}
	if _, ok := env["notifications"]; !ok {
		t.Fatalf("blank rename still reports success")
	}

	_, _, err := runCLI(t, []string{"--dir", dir, "sections", "rename", "0", "9", "x"})
	if err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestValidate_ReportsDuplicatesAndOverlay(t *testing.T) {
	dir := setupForm(t)
	mustRun(t, dir, "questions", "duplicate", "a")
	mustRun(t, dir, "questions", "duplicate", "a")

	vfile := filepath.Join(t.TempDir(), "errors.json")
	if err := os.WriteFile(vfile, []byte(`[{"errorMessage":"bad concept","field":{"label":"B","id":"b","type":"obs"}}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	env := mustRun(t, dir, "validate", "--validation", vfile)
	data := env["data"].(map[string]any)
	if data["ok"] != false {
		t.Fatalf("expected not ok: %v", data)
	}
	dups := data["duplicateIds"].([]any)
	if len(dups) != 1 || dups[0] != "aDuplicate" {
		t.Fatalf("duplicateIds = %v", dups)
	}
	anns := data["annotations"].([]any)
	if len(anns) != 1 || anns[0].(map[string]any)["error"] != "bad concept" {
		t.Fatalf("annotations = %v", anns)
	}
}

func TestExportImportAndHistory(t *testing.T) {
	dir := setupForm(t)
	file := filepath.Join(t.TempDir(), "form.json")
	mustRun(t, dir, "export", "--out", file)

	other := t.TempDir()
	env := mustRun(t, other, "import", file)
	if env["data"].(map[string]any)["questions"] != float64(4) {
		t.Fatalf("unexpected import: %v", env)
	}

	hist := mustRun(t, dir, "history", "--limit", "0")
	snaps := hist["data"].([]any)
	if len(snaps) < 5 {
		t.Fatalf("expected a snapshot per change, got %d", len(snaps))
	}
	// The oldest snapshot is the empty form created before the first edit.
	first := snaps[len(snaps)-1].(map[string]any)
	old := mustRun(t, dir, "history", "show", strconv.Itoa(int(first["seq"].(float64))))
	if pages := old["data"].(map[string]any)["pages"].([]any); len(pages) != 0 {
		t.Fatalf("unexpected snapshot: %v", old)
	}
}

func TestPublish_WritesMarkdown(t *testing.T) {
	dir := setupForm(t)
	to := t.TempDir()
	mustRun(t, dir, "publish", "--to", to)
	b, err := os.ReadFile(filepath.Join(to, "intake.md"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "- A (`a`, obs/text)") {
		t.Fatalf("unexpected markdown:\n%s", b)
	}
}

func TestEDNOutput(t *testing.T) {
	dir := setupForm(t)
	out, _, err := runCLI(t, []string{"--dir", dir, "--format", "edn", "pages", "list"})
	if err != nil {
		t.Fatalf("pages list: %v", err)
	}
	if !strings.HasPrefix(string(out), "{:data [") {
		t.Fatalf("edn = %s", out)
	}
}

func TestDocs(t *testing.T) {
	t.Setenv("FORMBUILDER_CONFIG_DIR", t.TempDir())
	env := mustRun(t, t.TempDir(), "docs")
	topics := env["data"].(map[string]any)["topics"].([]any)
	if len(topics) == 0 {
		t.Fatalf("expected topics")
	}
	out, _, err := runCLI(t, []string{"docs", "moving", "--raw"})
	if err != nil || !strings.HasPrefix(string(out), "# Moving questions") {
		t.Fatalf("raw docs: %q %v", out, err)
	}
	out, _, err = runCLI(t, []string{"docs", "moving", "--render"})
	if err != nil || !strings.Contains(ansi.Strip(string(out)), "Moving questions") {
		t.Fatalf("rendered docs: %q %v", out, err)
	}
	if _, _, err := runCLI(t, []string{"docs", "nope"}); err == nil {
		t.Fatalf("expected unknown topic error")
	}
}

func TestShow_NoForm(t *testing.T) {
	t.Setenv("FORMBUILDER_CONFIG_DIR", t.TempDir())
	_, stderr, err := runCLI(t, []string{"--dir", t.TempDir(), "show"})
	if err == nil || !strings.Contains(string(stderr), "no schema") {
		t.Fatalf("expected no schema error, got %v %s", err, stderr)
	}
}
