package refactor

import "sync"

// unsupported holds the commands that make no sense inside a refactor view:
// they navigate the file system, depend on split layouts or a language
// server, run the debugger or the shell, or record macros.
var unsupported = sync.OnceValue(func() map[string]struct{} {
	names := []string{
		"global_search",
		"global_refactor",
		"file_picker",
		"file_picker_in_current_directory",
		"code_action",
		"buffer_picker",
		"jumplist_picker",
		"symbol_picker",
		"select_references_to_symbol_under_cursor",
		"workspace_symbol_picker",
		"diagnostics_picker",
		"workspace_diagnostics_picker",
		"last_picker",
		"goto_definition",
		"goto_type_definition",
		"goto_implementation",
		"goto_file",
		"goto_file_hsplit",
		"goto_file_vsplit",
		"goto_reference",
		"goto_window_top",
		"goto_window_center",
		"goto_window_bottom",
		"goto_last_accessed_file",
		"goto_last_modified_file",
		"goto_last_modification",
		"goto_line",
		"goto_last_line",
		"goto_first_diag",
		"goto_last_diag",
		"goto_next_diag",
		"goto_prev_diag",
		"goto_line_start",
		"goto_line_end",
		"goto_next_buffer",
		"goto_previous_buffer",
		"signature_help",
		"completion",
		"hover",
		"select_next_sibling",
		"select_prev_sibling",
		"jump_view_right",
		"jump_view_left",
		"jump_view_up",
		"jump_view_down",
		"swap_view_right",
		"swap_view_left",
		"swap_view_up",
		"swap_view_down",
		"transpose_view",
		"rotate_view",
		"hsplit",
		"hsplit_new",
		"vsplit",
		"vsplit_new",
		"wonly",
		"select_textobject_around",
		"select_textobject_inner",
		"goto_next_function",
		"goto_prev_function",
		"goto_next_class",
		"goto_prev_class",
		"goto_next_parameter",
		"goto_prev_parameter",
		"goto_next_comment",
		"goto_prev_comment",
		"goto_next_test",
		"goto_prev_test",
		"goto_next_paragraph",
		"goto_prev_paragraph",
		"dap_launch",
		"dap_toggle_breakpoint",
		"dap_continue",
		"dap_pause",
		"dap_step_in",
		"dap_step_out",
		"dap_next",
		"dap_variables",
		"dap_terminate",
		"dap_edit_condition",
		"dap_edit_log",
		"dap_switch_thread",
		"dap_switch_stack_frame",
		"dap_enable_exceptions",
		"dap_disable_exceptions",
		"shell_pipe",
		"shell_pipe_to",
		"shell_insert_output",
		"shell_append_output",
		"shell_keep_pipe",
		"suspend",
		"rename_symbol",
		"record_macro",
		"replay_macro",
		"command_palette",
	}

	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
})

// IsUnsupported reports whether command is rejected inside a refactor view.
func IsUnsupported(command string) bool {
	_, ok := unsupported()[command]
	return ok
}
