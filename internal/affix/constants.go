package affix

// Error context messages for wrapped errors during affix loading
const (
	ErrContextFailedToReadAffixes   = "failed to read affix tables"
	ErrContextFailedToDecodeAffixes = "failed to decode affix tables"
)
