package lists

// SQL statements
const (
	SQLSelectLists = `SELECT list_id, name FROM crafting_lists ORDER BY name`

	SQLSelectListEntries = `
		SELECT item_id, name, amount, source, obtained
		FROM crafting_list_items
		WHERE list_id = $1
		ORDER BY sort_order, entry_id`

	SQLUpsertList = `
		INSERT INTO crafting_lists (name, updated_at) VALUES ($1, NOW())
		ON CONFLICT (name) DO UPDATE SET updated_at = excluded.updated_at
		RETURNING list_id`

	SQLDeleteListEntries = `DELETE FROM crafting_list_items WHERE list_id = $1`

	SQLInsertListEntry = `
		INSERT INTO crafting_list_items (list_id, item_id, name, amount, source, obtained, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	SQLRenameList = `UPDATE crafting_lists SET name = $1, updated_at = NOW() WHERE name = $2`

	SQLDeleteList = `DELETE FROM crafting_lists WHERE name = $1`
)

// Error messages
const (
	ErrMsgEmptyListName    = "list name must not be empty"
	ErrMsgListNotFound     = "list not found"
	ErrMsgSaveListFailed   = "failed to save crafting list"
	ErrMsgRenameListFailed = "failed to rename crafting list"
	ErrMsgDeleteListFailed = "failed to delete crafting list"
	ErrMsgGetListsFailed   = "failed to get crafting lists"
)

// Log messages
const (
	LogMsgListSaved = "Crafting list saved"
)
