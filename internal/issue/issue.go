// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

const (
	ConfigLoadFailedId Id = iota + 1
	PresetsLoadFailedId
	CommandNotFoundId
	WrongCommandKindId
	CommandNotBoundId
	ValueRejectedId
	ValueDecodeFailedId
)

type (
	// Id identifies a guide in the catalog. The zero value means "no guide".
	Id int

	// MarkdownMsg is guide text in Markdown.
	MarkdownMsg string

	// Issue is a catalog entry explaining a recurring problem.
	Issue struct {
		id    Id
		mdMsg MarkdownMsg
	}
)

func (i *Issue) Id() Id { return i.id }

func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// Render renders the guide with the named glamour style ("dark", "light",
// "notty", ...).
func (i *Issue) Render(style string) (string, error) {
	return render(string(i.mdMsg), style)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

capreg reads ` + "`config.cue`" + ` from its configuration directory, or the file given with ` + "`--config`" + `.
The file is validated against a schema before any command runs.

## Things you can try:
- Print the effective configuration with the defaults filled in:
~~~
$ capreg config show
~~~
- Check the allowed values:
  - ` + "`scan.binding_policy`" + `: ` + "`\"lenient\"`" + ` or ` + "`\"strict\"`" + `
  - ` + "`log.level`" + `: ` + "`\"debug\"`" + `, ` + "`\"info\"`" + `, ` + "`\"warn\"`" + ` or ` + "`\"error\"`" + `
- Remove unknown fields; the schema is closed.`,
	}

	presetsLoadFailedIssue = &Issue{
		id: PresetsLoadFailedId,
		mdMsg: `
# Preset file could not be read

Presets are applied after every scan. The file named by ` + "`presets_file`" + ` must be TOML
with one table per group:

~~~toml
[Net]
Port = "9090"
Host = "example.org"
~~~

Values are strings and go through the same decoding and validation as ` + "`capreg set`" + `.`,
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Command not found

Commands are addressed as ` + "`Group/Name`" + `. Both parts are case-insensitive.

## Things you can try:
- List every registered command:
~~~
$ capreg list
~~~
- Rescan the loaded bundles if the command was added recently:
~~~
$ capreg rescan
~~~`,
	}

	wrongCommandKindIssue = &Issue{
		id: WrongCommandKindId,
		mdMsg: `
# Wrong command kind

Each command has one kind and supports only its own operations:

| Kind | Operations |
|---|---|
| raw | none |
| button | click |
| field | get, set, refresh |
| property | get, set |

Use ` + "`capreg describe <group>`" + ` to see the kind of every command in a group.`,
	}

	commandNotBoundIssue = &Issue{
		id: CommandNotBoundId,
		mdMsg: `
# Command is not bound

The command was registered, but binding it to its target failed during the scan, so it
cannot be used. The scan log at ` + "`--verbose`" + ` shows the binding error.

## Things you can try:
- Fix the export in the bundle and rescan
- Switch to ` + "`scan.binding_policy: \"strict\"`" + ` to keep unbound commands out of the registry`,
	}

	valueRejectedIssue = &Issue{
		id: ValueRejectedId,
		mdMsg: `
# Value rejected

The value decoded correctly but the command's validator refused it. The stored value is
unchanged. ` + "`capreg describe <group>`" + ` marks validated commands.`,
	}

	valueDecodeFailedIssue = &Issue{
		id: ValueDecodeFailedId,
		mdMsg: `
# Value could not be decoded

Text values are decoded as YAML into the command's value type, so JSON works too.

~~~
$ capreg set Net/Port 9090
$ capreg set Net/Host '"example.org"'
~~~`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		presetsLoadFailedIssue.Id(): presetsLoadFailedIssue,
		commandNotFoundIssue.Id():   commandNotFoundIssue,
		wrongCommandKindIssue.Id():  wrongCommandKindIssue,
		commandNotBoundIssue.Id():   commandNotBoundIssue,
		valueRejectedIssue.Id():     valueRejectedIssue,
		valueDecodeFailedIssue.Id(): valueDecodeFailedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, id := range slices.Sorted(maps.Keys(issues)) {
		out = append(out, issues[id])
	}
	return out
}

// Get returns the entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
