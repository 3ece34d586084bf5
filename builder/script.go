package builder

import "redisai-go/message"

// ScriptSet stores TorchScript source. An empty tag is omitted.
func (b *Builder) ScriptSet(name, device, script, tag string) message.Command {
	cmd := message.Command{message.Str(CmdScriptSet), message.Str(name), message.Str(device)}
	if tag != "" {
		cmd = append(cmd, message.Str(argTag), message.Str(tag))
	}
	return append(cmd, message.Str(argSource), message.Str(script))
}

// ScriptGet fetches a script's metadata and, unless metaOnly, its source.
func (b *Builder) ScriptGet(name string, metaOnly bool) message.Command {
	cmd := message.Command{message.Str(CmdScriptGet), message.Str(name), message.Str(argMeta)}
	if !metaOnly {
		cmd = append(cmd, message.Str(argSource))
	}
	return cmd
}

// ScriptDel deletes a script.
func (b *Builder) ScriptDel(name string) message.Command {
	return message.Command{message.Str(CmdScriptDel), message.Str(name)}
}

// ScriptRun calls function of a stored script.
func (b *Builder) ScriptRun(name, function string, inputs, outputs NameList) message.Command {
	cmd := message.Command{message.Str(CmdScriptRun), message.Str(name), message.Str(function)}
	cmd = appendNames(cmd, argInputs, inputs)
	return appendNames(cmd, argOutputs, outputs)
}

// ScriptScan lists stored scripts.
func (b *Builder) ScriptScan() message.Command {
	return message.Command{message.Str(CmdScriptScan)}
}
