package mq_client

type Exchange struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type Queue struct {
	Name    string `yaml:"name"`
	Durable bool   `yaml:"durable"`
}

type Binding struct {
	Queue    string `yaml:"queue"`
	Exchange string `yaml:"exchange"`
}

type Channel struct {
	Prefetch int `yaml:"prefetch"`
}

type MQClientConfig struct {
	Exchange struct {
		Events Exchange `yaml:"events"`
	} `yaml:"exchange"`
	Queue struct {
		TransactionRecorder Queue `yaml:"transaction_recorder"`
		BalanceCache        Queue `yaml:"balance_cache"`
	} `yaml:"queue"`
	Binding struct {
		TransactionRecorder Binding `yaml:"transaction_recorder"`
		BalanceCache        Binding `yaml:"balance_cache"`
	} `yaml:"binding"`
	Channel struct {
		TransactionRecorder Channel `yaml:"transaction_recorder"`
		BalanceCache        Channel `yaml:"balance_cache"`
	} `yaml:"channel"`
}
