package awsconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolja-aws/kolja/pkg/schema"
)

func adminProfile() DesiredSection {
	return RoleProfileSection("kolja", "111111111111", "AdminRole", "ap-southeast-2")
}

func readOnlyProfile() DesiredSection {
	return RoleProfileSection("kolja", "111111111111", "ReadOnlyRole", "ap-southeast-2")
}

func TestReconcileAppendsToEmptyDocument(t *testing.T) {
	session := SessionSection("kolja", schema.SSOSessionConfig{
		StartURL: "https://kolja.awsapps.com/start",
		Region:   "ap-southeast-2",
	})

	doc, changes := Reconcile(&Document{}, []DesiredSection{session, adminProfile(), readOnlyProfile()})

	require.Equal(t, []string{
		"sso-session kolja",
		"profile 111111111111-AdminRole",
		"profile 111111111111-ReadOnlyRole",
	}, doc.Headers())
	assert.True(t, changes.Changed())
	assert.Len(t, changes.Added, 3)
	assert.Empty(t, changes.Updated)
	assert.Empty(t, changes.Removed)
}

func TestReconcileIsIdempotent(t *testing.T) {
	desired := []DesiredSection{adminProfile(), readOnlyProfile()}

	once, changes := Reconcile(&Document{}, desired)
	require.True(t, changes.Changed())

	reparsed, err := Parse(once.Render())
	require.NoError(t, err)

	twice, changes := Reconcile(reparsed, desired)
	assert.False(t, changes.Changed(), "second run must be a no-op")
	assert.Equal(t, once.Render(), twice.Render())
}

func TestReconcileReplacesInPlace(t *testing.T) {
	text := "[profile 111111111111-AdminRole]\nsso_session = kolja\nregion = us-east-1\n\n[default]\nregion = eu-central-1\n"
	current, err := Parse(text)
	require.NoError(t, err)

	doc, changes := Reconcile(current, []DesiredSection{adminProfile()})

	require.Equal(t, []string{"profile 111111111111-AdminRole", "default"}, doc.Headers())
	assert.Equal(t, []string{"profile 111111111111-AdminRole"}, changes.Updated)

	region, ok := doc.Section("profile 111111111111-AdminRole").Get(KeyRegion)
	require.True(t, ok)
	assert.Equal(t, "ap-southeast-2", region)
}

func TestReconcileStaleRoleDeletion(t *testing.T) {
	// 1-A is re-supplied with new fields, 1-B was revoked.
	text := "[profile 111111111111-AdminRole]\nsso_session = kolja\nregion = us-east-1\n\n[profile 111111111111-ReadOnlyRole]\nsso_session = kolja\nregion = us-east-1\n"
	current, err := Parse(text)
	require.NoError(t, err)

	doc, changes := Reconcile(current, []DesiredSection{adminProfile()}, PruneSessionProfiles("kolja"))

	assert.Equal(t, []string{"profile 111111111111-AdminRole"}, doc.Headers())
	assert.Equal(t, []string{"profile 111111111111-AdminRole"}, changes.Updated)
	assert.Equal(t, []string{"profile 111111111111-ReadOnlyRole"}, changes.Removed)
}

func TestReconcilePruneIsSessionScoped(t *testing.T) {
	text := "[profile 111111111111-AdminRole]\nsso_session = kolja\n\n" +
		"[profile 222222222222-AdminRole]\nsso_session = other\n\n" +
		"[profile hand-written]\nregion = us-east-1\n\n" +
		"[sso-session kolja]\nsso_region = ap-southeast-2\n"
	current, err := Parse(text)
	require.NoError(t, err)

	doc, changes := Reconcile(current, nil, PruneSessionProfiles("kolja"))

	// Only the kolja-bound profile goes. Other sessions' profiles,
	// hand-written profiles, and sso-session sections all stay.
	assert.Equal(t, []string{
		"profile 222222222222-AdminRole",
		"profile hand-written",
		"sso-session kolja",
	}, doc.Headers())
	assert.Equal(t, []string{"profile 111111111111-AdminRole"}, changes.Removed)
}

func TestReconcileNeverDeletesSSOSessions(t *testing.T) {
	text := "[sso-session kolja]\nsso_start_url = https://old.example.com\nsso_region = ap-southeast-2\n"
	current, err := Parse(text)
	require.NoError(t, err)

	doc, changes := Reconcile(current, []DesiredSection{adminProfile()}, PruneSessionProfiles("kolja"))

	assert.Equal(t, []string{"sso-session kolja", "profile 111111111111-AdminRole"}, doc.Headers())
	assert.Empty(t, changes.Removed)
}

func TestReconcilePreservesNonTargetBytes(t *testing.T) {
	defaultSection := "[default]\n# keep me\nregion=eu-west-1\noutput = json\n"
	current, err := Parse(defaultSection + "\n[profile 111111111111-AdminRole]\nsso_session = kolja\n")
	require.NoError(t, err)

	doc, _ := Reconcile(current, []DesiredSection{adminProfile()})

	rendered := doc.Render()
	assert.Contains(t, rendered, "# keep me\nregion=eu-west-1\noutput = json")
}

func TestReconcileDeterministicOutput(t *testing.T) {
	desired := []DesiredSection{readOnlyProfile(), adminProfile()}

	first, _ := Reconcile(&Document{}, desired)
	for i := 0; i < 10; i++ {
		again, _ := Reconcile(&Document{}, desired)
		require.Equal(t, first.Render(), again.Render())
	}

	// Caller order decides append order.
	assert.Equal(t, []string{
		"profile 111111111111-ReadOnlyRole",
		"profile 111111111111-AdminRole",
	}, first.Headers())
}

func TestReconcileCollapsesDuplicateHeaders(t *testing.T) {
	text := "[profile 111111111111-AdminRole]\nregion = us-east-1\n\n[profile 111111111111-AdminRole]\nregion = us-west-2\n"
	current, err := Parse(text)
	require.NoError(t, err)

	doc, changes := Reconcile(current, []DesiredSection{adminProfile()})

	assert.Equal(t, []string{"profile 111111111111-AdminRole"}, doc.Headers())
	assert.Contains(t, changes.Removed, "profile 111111111111-AdminRole")
}

func TestSessionSectionDefaultsScopes(t *testing.T) {
	section := SessionSection("kolja", schema.SSOSessionConfig{
		StartURL: "https://kolja.awsapps.com/start",
		Region:   "ap-southeast-2",
	})

	require.Equal(t, "sso-session kolja", section.Header)
	assert.Contains(t, section.Keys, KeyValue{Key: KeyRegistrationScopes, Value: schema.DefaultRegistrationScopes})
}

func TestRoleProfileSectionShape(t *testing.T) {
	section := RoleProfileSection("kolja", "111111111111", "AdminRole", "ap-southeast-2")

	assert.Equal(t, "profile 111111111111-AdminRole", section.Header)
	assert.Equal(t, []KeyValue{
		{Key: KeySSOSession, Value: "kolja"},
		{Key: KeySSOAccountID, Value: "111111111111"},
		{Key: KeySSORoleName, Value: "AdminRole"},
		{Key: KeyRegion, Value: "ap-southeast-2"},
		{Key: KeyOutput, Value: "text"},
	}, section.Keys)
}
