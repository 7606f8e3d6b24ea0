package config

const configTemplate = `# tock configuration file
# Countdown settings used by 'tock start' when no flags are given

# Starting duration
minutes: 1
seconds: 0

# Time between ticks (Go duration syntax)
interval: 1s

# Display pattern: mm:ss, m:s, ss:mm, s:m, mm, m, ss or s
format: mm:ss

# Tick on a background worker instead of the main loop
background: false

# Named presets, selected with 'tock start --preset <name>'
# Keys left out fall back to the global values above
presets:
  pomodoro:
    minutes: 25
  short_break:
    minutes: 5
  long_break:
    minutes: 15

# Observability settings
log_level: info  # debug, info, warn, error
`
