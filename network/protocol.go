package network

const (
	MsgTypeHeartbeat = 1

	// Client intents.
	MsgTypeProceedWordInput = 101
	MsgTypeReturnToSetup    = 102
	MsgTypeAddWord          = 103
	MsgTypeStartGame        = 104
	MsgTypeBeginRound       = 105
	MsgTypeBeginNextTurn    = 106
	MsgTypeWordGuessed      = 107
	MsgTypeSkipWord         = 108
	MsgTypeResetGame        = 109

	// Catalog operations.
	MsgTypeSaveCatalog = 201
	MsgTypeLoadCatalog = 202

	// Server pushes.
	MsgTypeStateSync   = 301
	MsgTypeTimerTick   = 302
	MsgTypeWordChanged = 303
	MsgTypeTurnEnded   = 304
	MsgTypeGameEnded   = 305
	MsgTypeAnalytics   = 306
	MsgTypeError       = 399
)
