package commands

const (
	_etc = "/usr/local/etc/uhppoted"

	DEFAULT_CREDENTIALS = _etc + "/lambda-sheets/credentials.json"
)
