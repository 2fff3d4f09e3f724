package keymap

import "slices"

// Command names with meaning outside ordinary editing.
const (
	CommandNormalMode  = "normal_mode"
	CommandCommandMode = "command_mode"
	CommandCloseView   = "wclose"
)

// CommandInfo describes a command that can be bound to a key.
type CommandInfo struct {
	Name string
	Doc  string
}

// catalogue lists every command a keymap may reference. The editor
// implements the editing subset; the rest exist so that host level bindings
// resolve to a name.
var catalogue = []CommandInfo{
	{"move_char_left", "Move left"},
	{"move_char_right", "Move right"},
	{"move_line_up", "Move up"},
	{"move_line_down", "Move down"},
	{"move_next_word_start", "Move to start of next word"},
	{"move_prev_word_start", "Move to start of previous word"},
	{"move_next_word_end", "Move to end of next word"},
	{"page_up", "Move page up"},
	{"page_down", "Move page down"},
	{"page_cursor_half_up", "Move cursor and page half page up"},
	{"page_cursor_half_down", "Move cursor and page half page down"},
	{"goto_file_start", "Goto line number <n> else file start"},
	{"goto_file_end", "Goto file end"},
	{"normal_mode", "Enter normal mode"},
	{"insert_mode", "Insert before selection"},
	{"append_mode", "Append after selection"},
	{"insert_at_line_start", "Insert at start of line"},
	{"insert_at_line_end", "Insert at end of line"},
	{"open_below", "Open new line below selection"},
	{"open_above", "Open new line above selection"},
	{"delete_selection", "Delete selection"},
	{"change_selection", "Change selection"},
	{"delete_char_backward", "Delete previous char"},
	{"delete_char_forward", "Delete next char"},
	{"delete_word_backward", "Delete previous word"},
	{"kill_to_line_end", "Delete till end of line"},
	{"insert_newline", "Insert newline char"},
	{"insert_tab", "Insert tab char"},
	{"undo", "Undo change"},
	{"redo", "Redo change"},
	{"command_mode", "Enter command mode"},
	{"wclose", "Close window"},

	{"global_search", "Global search in workspace folder"},
	{"global_refactor", "Global refactoring in workspace folder"},
	{"file_picker", "Open file picker"},
	{"file_picker_in_current_directory", "Open file picker at current working directory"},
	{"code_action", "Perform code action"},
	{"buffer_picker", "Open buffer picker"},
	{"jumplist_picker", "Open jumplist picker"},
	{"symbol_picker", "Open symbol picker"},
	{"select_references_to_symbol_under_cursor", "Select symbol references"},
	{"workspace_symbol_picker", "Open workspace symbol picker"},
	{"diagnostics_picker", "Open diagnostic picker"},
	{"workspace_diagnostics_picker", "Open workspace diagnostic picker"},
	{"last_picker", "Open last picker"},
	{"goto_definition", "Goto definition"},
	{"goto_type_definition", "Goto type definition"},
	{"goto_implementation", "Goto implementation"},
	{"goto_file", "Goto files in selection"},
	{"goto_file_hsplit", "Goto files in selection (hsplit)"},
	{"goto_file_vsplit", "Goto files in selection (vsplit)"},
	{"goto_reference", "Goto references"},
	{"goto_window_top", "Goto window top"},
	{"goto_window_center", "Goto window center"},
	{"goto_window_bottom", "Goto window bottom"},
	{"goto_last_accessed_file", "Goto last accessed file"},
	{"goto_last_modified_file", "Goto last modified file"},
	{"goto_last_modification", "Goto last modification"},
	{"goto_line", "Goto line"},
	{"goto_last_line", "Goto last line"},
	{"goto_first_diag", "Goto first diagnostic"},
	{"goto_last_diag", "Goto last diagnostic"},
	{"goto_next_diag", "Goto next diagnostic"},
	{"goto_prev_diag", "Goto previous diagnostic"},
	{"goto_line_start", "Goto line start"},
	{"goto_line_end", "Goto line end"},
	{"goto_next_buffer", "Goto next buffer"},
	{"goto_previous_buffer", "Goto previous buffer"},
	{"signature_help", "Show signature help"},
	{"completion", "Invoke completion popup"},
	{"hover", "Show docs for item under cursor"},
	{"select_next_sibling", "Select next sibling in syntax tree"},
	{"select_prev_sibling", "Select previous sibling in syntax tree"},
	{"jump_view_right", "Jump to right split"},
	{"jump_view_left", "Jump to left split"},
	{"jump_view_up", "Jump to split above"},
	{"jump_view_down", "Jump to split below"},
	{"swap_view_right", "Swap with right split"},
	{"swap_view_left", "Swap with left split"},
	{"swap_view_up", "Swap with split above"},
	{"swap_view_down", "Swap with split below"},
	{"transpose_view", "Transpose splits"},
	{"rotate_view", "Goto next window"},
	{"hsplit", "Horizontal bottom split"},
	{"hsplit_new", "Horizontal bottom split scratch buffer"},
	{"vsplit", "Vertical right split"},
	{"vsplit_new", "Vertical right split scratch buffer"},
	{"wonly", "Close windows except current"},
	{"select_textobject_around", "Select around object"},
	{"select_textobject_inner", "Select inside object"},
	{"goto_next_function", "Goto next function"},
	{"goto_prev_function", "Goto previous function"},
	{"goto_next_class", "Goto next type definition"},
	{"goto_prev_class", "Goto previous type definition"},
	{"goto_next_parameter", "Goto next parameter"},
	{"goto_prev_parameter", "Goto previous parameter"},
	{"goto_next_comment", "Goto next comment"},
	{"goto_prev_comment", "Goto previous comment"},
	{"goto_next_test", "Goto next test"},
	{"goto_prev_test", "Goto previous test"},
	{"goto_next_paragraph", "Goto next paragraph"},
	{"goto_prev_paragraph", "Goto previous paragraph"},
	{"dap_launch", "Launch debug target"},
	{"dap_toggle_breakpoint", "Toggle breakpoint"},
	{"dap_continue", "Continue program execution"},
	{"dap_pause", "Pause program execution"},
	{"dap_step_in", "Step in"},
	{"dap_step_out", "Step out"},
	{"dap_next", "Step to next"},
	{"dap_variables", "List variables"},
	{"dap_terminate", "End debug session"},
	{"dap_edit_condition", "Edit breakpoint on the current line"},
	{"dap_edit_log", "Edit breakpoint log message on the current line"},
	{"dap_switch_thread", "Switch current thread"},
	{"dap_switch_stack_frame", "Switch stack frame"},
	{"dap_enable_exceptions", "Enable exception breakpoints"},
	{"dap_disable_exceptions", "Disable exception breakpoints"},
	{"shell_pipe", "Pipe selections through shell command"},
	{"shell_pipe_to", "Pipe selections into shell command ignoring output"},
	{"shell_insert_output", "Insert shell command output before selections"},
	{"shell_append_output", "Append shell command output after selections"},
	{"shell_keep_pipe", "Filter selections with shell predicate"},
	{"suspend", "Suspend and return to shell"},
	{"rename_symbol", "Rename symbol"},
	{"record_macro", "Record macro"},
	{"replay_macro", "Replay macro"},
	{"command_palette", "Open command palette"},
}

var catalogueIndex = func() map[string]CommandInfo {
	idx := make(map[string]CommandInfo, len(catalogue))
	for _, c := range catalogue {
		idx[c.Name] = c
	}
	return idx
}()

// LookupCommand returns the catalogue entry for name.
func LookupCommand(name string) (CommandInfo, bool) {
	c, ok := catalogueIndex[name]
	return c, ok
}

// CommandNames returns every known command name, sorted.
func CommandNames() []string {
	names := make([]string, 0, len(catalogue))
	for _, c := range catalogue {
		names = append(names, c.Name)
	}
	slices.Sort(names)
	return names
}

// Describe returns the documentation of a command, or its name when unknown.
func Describe(name string) string {
	if c, ok := catalogueIndex[name]; ok {
		return c.Doc
	}
	return name
}
