package keymap

func leaf(cmd string) *Leaf { return &Leaf{Command: cmd} }

// Default returns the built-in keymaps. Every call builds fresh nodes.
func Default() Keymaps {
	return Keymaps{
		ModeNormal: defaultNormal(),
		ModeInsert: defaultInsert(),
	}
}

func defaultNormal() *Node {
	gotoNode := NewNode("Goto").
		Bind("g", leaf("goto_file_start")).
		Bind("e", leaf("goto_last_line")).
		Bind("f", leaf("goto_file")).
		Bind("h", leaf("goto_line_start")).
		Bind("l", leaf("goto_line_end")).
		Bind("d", leaf("goto_definition")).
		Bind("y", leaf("goto_type_definition")).
		Bind("r", leaf("goto_reference")).
		Bind("i", leaf("goto_implementation")).
		Bind("t", leaf("goto_window_top")).
		Bind("c", leaf("goto_window_center")).
		Bind("b", leaf("goto_window_bottom")).
		Bind("a", leaf("goto_last_accessed_file")).
		Bind("m", leaf("goto_last_modified_file")).
		Bind("n", leaf("goto_next_buffer")).
		Bind("p", leaf("goto_previous_buffer")).
		Bind(".", leaf("goto_last_modification"))

	windowNode := func() *Node {
		return NewNode("Window").
			Bind("w", leaf("rotate_view")).
			Bind("s", leaf("hsplit")).
			Bind("v", leaf("vsplit")).
			Bind("t", leaf("transpose_view")).
			Bind("f", leaf("goto_file_hsplit")).
			Bind("F", leaf("goto_file_vsplit")).
			Bind("q", leaf("wclose")).
			Bind("o", leaf("wonly")).
			Bind("h", leaf("jump_view_left")).
			Bind("j", leaf("jump_view_down")).
			Bind("k", leaf("jump_view_up")).
			Bind("l", leaf("jump_view_right")).
			Bind("H", leaf("swap_view_left")).
			Bind("J", leaf("swap_view_down")).
			Bind("K", leaf("swap_view_up")).
			Bind("L", leaf("swap_view_right")).
			Bind("n", NewNode("New split scratch buffer").
				Bind("s", leaf("hsplit_new")).
				Bind("v", leaf("vsplit_new")))
	}

	debugNode := NewNode("Debug").
		Bind("l", leaf("dap_launch")).
		Bind("b", leaf("dap_toggle_breakpoint")).
		Bind("c", leaf("dap_continue")).
		Bind("h", leaf("dap_pause")).
		Bind("i", leaf("dap_step_in")).
		Bind("o", leaf("dap_step_out")).
		Bind("n", leaf("dap_next")).
		Bind("v", leaf("dap_variables")).
		Bind("t", leaf("dap_terminate")).
		Bind("s", leaf("dap_switch_stack_frame")).
		Bind("e", leaf("dap_enable_exceptions")).
		Bind("E", leaf("dap_disable_exceptions"))

	spaceNode := NewNode("Space").
		Bind("f", leaf("file_picker")).
		Bind("F", leaf("file_picker_in_current_directory")).
		Bind("b", leaf("buffer_picker")).
		Bind("j", leaf("jumplist_picker")).
		Bind("s", leaf("symbol_picker")).
		Bind("S", leaf("workspace_symbol_picker")).
		Bind("d", leaf("diagnostics_picker")).
		Bind("D", leaf("workspace_diagnostics_picker")).
		Bind("a", leaf("code_action")).
		Bind("'", leaf("last_picker")).
		Bind("g", debugNode).
		Bind("w", windowNode()).
		Bind("k", leaf("hover")).
		Bind("r", leaf("rename_symbol")).
		Bind("h", leaf("select_references_to_symbol_under_cursor")).
		Bind("/", leaf("global_search")).
		Bind("R", leaf("global_refactor")).
		Bind("?", leaf("command_palette"))

	matchNode := NewNode("Match").
		Bind("a", leaf("select_textobject_around")).
		Bind("i", leaf("select_textobject_inner"))

	nextNode := NewNode("Right bracket").
		Bind("d", leaf("goto_next_diag")).
		Bind("D", leaf("goto_last_diag")).
		Bind("f", leaf("goto_next_function")).
		Bind("t", leaf("goto_next_class")).
		Bind("a", leaf("goto_next_parameter")).
		Bind("c", leaf("goto_next_comment")).
		Bind("T", leaf("goto_next_test")).
		Bind("p", leaf("goto_next_paragraph"))

	prevNode := NewNode("Left bracket").
		Bind("d", leaf("goto_prev_diag")).
		Bind("D", leaf("goto_first_diag")).
		Bind("f", leaf("goto_prev_function")).
		Bind("t", leaf("goto_prev_class")).
		Bind("a", leaf("goto_prev_parameter")).
		Bind("c", leaf("goto_prev_comment")).
		Bind("T", leaf("goto_prev_test")).
		Bind("p", leaf("goto_prev_paragraph"))

	return NewNode("Normal").
		Bind("h", leaf("move_char_left")).
		Bind("left", leaf("move_char_left")).
		Bind("j", leaf("move_line_down")).
		Bind("down", leaf("move_line_down")).
		Bind("k", leaf("move_line_up")).
		Bind("up", leaf("move_line_up")).
		Bind("l", leaf("move_char_right")).
		Bind("right", leaf("move_char_right")).
		Bind("w", leaf("move_next_word_start")).
		Bind("b", leaf("move_prev_word_start")).
		Bind("e", leaf("move_next_word_end")).
		Bind("G", leaf("goto_line")).
		Bind("g", gotoNode).
		Bind("i", leaf("insert_mode")).
		Bind("a", leaf("append_mode")).
		Bind("I", leaf("insert_at_line_start")).
		Bind("A", leaf("insert_at_line_end")).
		Bind("o", leaf("open_below")).
		Bind("O", leaf("open_above")).
		Bind("d", leaf("delete_selection")).
		Bind("c", leaf("change_selection")).
		Bind("u", leaf("undo")).
		Bind("U", leaf("redo")).
		Bind("q", leaf("replay_macro")).
		Bind("Q", leaf("record_macro")).
		Bind("m", matchNode).
		Bind("[", prevNode).
		Bind("]", nextNode).
		Bind("alt+n", leaf("select_next_sibling")).
		Bind("alt+p", leaf("select_prev_sibling")).
		Bind("|", leaf("shell_pipe")).
		Bind("alt+|", leaf("shell_pipe_to")).
		Bind("!", leaf("shell_insert_output")).
		Bind("alt+!", leaf("shell_append_output")).
		Bind("$", leaf("shell_keep_pipe")).
		Bind(":", leaf("command_mode")).
		Bind("space", spaceNode).
		Bind("ctrl+w", windowNode()).
		Bind("ctrl+z", leaf("suspend")).
		Bind("ctrl+b", leaf("page_up")).
		Bind("ctrl+f", leaf("page_down")).
		Bind("pgup", leaf("page_up")).
		Bind("pgdown", leaf("page_down")).
		Bind("ctrl+u", leaf("page_cursor_half_up")).
		Bind("ctrl+d", leaf("page_cursor_half_down")).
		Bind("home", leaf("goto_line_start")).
		Bind("end", leaf("goto_line_end")).
		Bind("esc", leaf("normal_mode"))
}

func defaultInsert() *Node {
	return NewNode("Insert").
		Bind("esc", leaf("normal_mode")).
		Bind("backspace", leaf("delete_char_backward")).
		Bind("delete", leaf("delete_char_forward")).
		Bind("enter", leaf("insert_newline")).
		Bind("tab", leaf("insert_tab")).
		Bind("ctrl+w", leaf("delete_word_backward")).
		Bind("ctrl+k", leaf("kill_to_line_end")).
		Bind("ctrl+x", leaf("completion")).
		Bind("ctrl+s", leaf("signature_help")).
		Bind("left", leaf("move_char_left")).
		Bind("right", leaf("move_char_right")).
		Bind("up", leaf("move_line_up")).
		Bind("down", leaf("move_line_down")).
		Bind("pgup", leaf("page_up")).
		Bind("pgdown", leaf("page_down")).
		Bind("home", leaf("goto_line_start")).
		Bind("end", leaf("goto_line_end"))
}
