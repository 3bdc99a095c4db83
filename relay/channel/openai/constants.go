package openai

const ChannelName = "openai"
