package config

// Template is the file written by 'voiceprofile config init'
const Template = `# VoiceProfile Configuration

[transcriber]
backend = "whisper"        # "whisper" or "google"
model_size = "small"       # tiny, base, small, medium, large-v2
device = "auto"            # auto, cpu, cuda
compute_type = "int8"      # int8, float16, float32
vad_filter = true          # Skip silence with voice activity detection
language = ""              # Language hint, e.g. "en"; empty to auto-detect
max_audio_mb = 25
timeout_seconds = 300
concurrency = 2            # Files transcribed in parallel by 'analyze'

[transcriber.whisper]
host = "http://localhost"
port = 8643

# Optional OAuth2 client credentials for a protected whisper service
# [transcriber.whisper.auth]
# token_url = "https://auth.example.com/oauth/token"
# client_id = "voiceprofile"
# Secret read from VOICEPROFILE_CLIENT_SECRET env var

[transcriber.google]
credentials_path = "~/.config/voiceprofile/google_credentials.json"
token_path = "~/.config/voiceprofile/google_token.json"
sample_rate_hertz = 16000

[scoring]
min_score_threshold = 3.0  # Categories below this percentage are dropped
negation_window = 3        # Tokens before a keyword checked for negation
context_window = 5         # Tokens around a keyword checked for boosters
context_boost = 1.3

[taxonomy]
# path = "~/.config/voiceprofile/taxonomy.toml"  # Override the built-in keywords

[cache]
enabled = true             # Never transcribe the same audio twice
path = "~/.local/share/voiceprofile/transcripts.db"

[server]
addr = "127.0.0.1:8640"

[log]
level = "info"             # debug, info, warn, error

[mcp]
enabled = true
transport = "stdio"
`
