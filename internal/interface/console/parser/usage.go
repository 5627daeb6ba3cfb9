package parser

// ══════════════════════════════════════════════════════════════════════════════
// USAGE CATALOGUE
// Usage texts are plain configuration data: the registry hands each parse
// function its own usage text, and every parse error carries it verbatim.
// ══════════════════════════════════════════════════════════════════════════════

// Usage texts, one per command word.
const (
	UsageAdd = WordAdd + ": Adds a person to the roster.\n" +
		"Parameters: n/NAME p/PHONE e/EMAIL a/ADDRESS c/CLASS [t/TAG]...\n" +
		"Example: " + WordAdd + " n/John Doe p/98765432 e/johnd@example.com " +
		"a/311, Clementi Ave 2, #02-25 c/1A t/friends t/owesMoney"

	UsageClear = WordClear + ": Clears the whole roster.\n" +
		"Example: " + WordClear

	UsageDelete = WordDelete + ": Deletes the person identified by the index " +
		"number used in the displayed person list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: " + WordDelete + " 1"

	UsageEdit = WordEdit + ": Edits the person identified by the index number " +
		"used in the displayed person list. Existing values will be " +
		"overwritten by the input values.\n" +
		"Parameters: INDEX (must be a positive integer) [n/NAME] [p/PHONE] " +
		"[e/EMAIL] [a/ADDRESS] [c/CLASS] [t/TAG]... [att/SESSION=0|1]... " +
		"[rem/REMARK]... [s/SUBJECT:COMPONENT=SCORE/MAX]...\n" +
		"Example: " + WordEdit + " 1 p/91234567 e/johndoe@example.com"

	UsageExit = WordExit + ": Exits the program.\n" +
		"Example: " + WordExit

	UsageFind = WordFind + ": Finds all persons whose names contain any of " +
		"the specified keywords (case-insensitive) and displays them as a " +
		"list with index numbers.\n" +
		"Parameters: KEYWORD [MORE_KEYWORDS]...\n" +
		"Example: " + WordFind + " alice bob charlie"

	UsageHelp = WordHelp + ": Shows program usage instructions.\n" +
		"Example: " + WordHelp

	UsageList = WordList + ": Lists all persons in the roster.\n" +
		"Example: " + WordList

	UsageSort = WordSort + ": Sorts the roster by each person's total " +
		"subject grade.\n" +
		"Parameters: asc|desc (also ascending/descending, a/d)\n" +
		"Example: " + WordSort + " desc"
)

// CommandUsage pairs a command word with its usage text, for the help view.
type CommandUsage struct {
	// Word is the command word.
	Word string

	// Usage is the full usage text.
	Usage string
}

// AllUsages returns the usage catalogue in alphabetical command order.
func AllUsages() []CommandUsage {
	return []CommandUsage{
		{Word: WordAdd, Usage: UsageAdd},
		{Word: WordClear, Usage: UsageClear},
		{Word: WordDelete, Usage: UsageDelete},
		{Word: WordEdit, Usage: UsageEdit},
		{Word: WordExit, Usage: UsageExit},
		{Word: WordFind, Usage: UsageFind},
		{Word: WordHelp, Usage: UsageHelp},
		{Word: WordList, Usage: UsageList},
		{Word: WordSort, Usage: UsageSort},
	}
}
